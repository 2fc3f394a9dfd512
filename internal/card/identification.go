package card

import (
	"fmt"

	"github.com/haulageworks/tachograph-go/internal/model"
)

// unmarshalDriverCardIdentification decodes EF_Identification for a driver
// card: CardIdentification (Data Dictionary 2.24, 65 bytes) followed by
// DriverCardHolderIdentification (Data Dictionary 2.62, 78 bytes), 143
// bytes fixed.
func (opts UnmarshalOptions) unmarshalDriverCardIdentification(data []byte) (model.Driver, error) {
	const (
		lenTotal = 143

		idxNation         = 0
		idxDriverID       = 1
		lenDriverID       = 14
		idxReplacement    = 15
		idxRenewal        = 16
		idxAuthorityName  = 17
		lenAuthorityName  = 36
		idxIssueDate      = 53
		idxValidityBegin  = 57
		idxExpiryDate     = 61
		idxSurname        = 65
		lenName           = 36
		idxFirstNames     = 101
		idxBirthDate      = 137
		idxLanguage       = 141
		lenLanguage       = 2
	)
	if len(data) != lenTotal {
		return model.Driver{}, fmt.Errorf("invalid data length for DriverCardIdentification: got %d, want %d", len(data), lenTotal)
	}

	var d model.Driver
	d.CardIssuingNation = opts.UnmarshalNationCode(data[idxNation])

	cardNumber, err := opts.UnmarshalIA5String(data[idxDriverID : idxDriverID+lenDriverID])
	if err != nil {
		return model.Driver{}, fmt.Errorf("driver identification number: %w", err)
	}
	replacement, err := opts.UnmarshalIA5String(data[idxReplacement : idxReplacement+1])
	if err != nil {
		return model.Driver{}, fmt.Errorf("card replacement index: %w", err)
	}
	renewal, err := opts.UnmarshalIA5String(data[idxRenewal : idxRenewal+1])
	if err != nil {
		return model.Driver{}, fmt.Errorf("card renewal index: %w", err)
	}
	d.CardNumber = cardNumber + replacement + renewal

	authority, err := opts.UnmarshalStringValue(data[idxAuthorityName : idxAuthorityName+lenAuthorityName])
	if err != nil {
		return model.Driver{}, fmt.Errorf("card issuing authority name: %w", err)
	}
	d.Licence.Authority = authority

	issueDate, err := opts.UnmarshalTimeReal(data[idxIssueDate : idxIssueDate+4])
	if err != nil {
		return model.Driver{}, fmt.Errorf("card issue date: %w", err)
	}
	_ = issueDate // neither issue date nor validity begin is surfaced on model.Driver; expiry is.

	validityBegin, err := opts.UnmarshalTimeReal(data[idxValidityBegin : idxValidityBegin+4])
	if err != nil {
		return model.Driver{}, fmt.Errorf("card validity begin: %w", err)
	}
	_ = validityBegin

	expiryDate, err := opts.UnmarshalTimeReal(data[idxExpiryDate : idxExpiryDate+4])
	if err != nil {
		return model.Driver{}, fmt.Errorf("card expiry date: %w", err)
	}
	d.CardExpiry = expiryDate

	surname, err := opts.UnmarshalStringValue(data[idxSurname : idxSurname+lenName])
	if err != nil {
		return model.Driver{}, fmt.Errorf("card holder surname: %w", err)
	}
	d.Surname = surname

	firstNames, err := opts.UnmarshalStringValue(data[idxFirstNames : idxFirstNames+lenName])
	if err != nil {
		return model.Driver{}, fmt.Errorf("card holder first names: %w", err)
	}
	d.FirstNames = firstNames

	birthDate, usedTimeReal, err := opts.UnmarshalBirthDate(data[idxBirthDate : idxBirthDate+4])
	if err != nil {
		return model.Driver{}, fmt.Errorf("card holder birth date: %w", err)
	}
	d.BirthDate = birthDate
	copy(d.BirthDateRaw[:], data[idxBirthDate:idxBirthDate+4])
	d.BirthDateIsTimeReal = usedTimeReal

	language, err := opts.UnmarshalIA5String(data[idxLanguage : idxLanguage+lenLanguage])
	if err != nil {
		return model.Driver{}, fmt.Errorf("card holder preferred language: %w", err)
	}
	d.PreferredLanguage = language

	return d, nil
}

// unmarshalDrivingLicenceInfo decodes EF_Driving_Licence_Info
// (CardDrivingLicenceInformation, Data Dictionary 2.18): issuing
// authority name (36 bytes), issuing nation (1 byte), licence number (16
// bytes), 53 bytes fixed.
func (opts UnmarshalOptions) unmarshalDrivingLicenceInfo(data []byte) (model.Licence, error) {
	const lenTotal = 53
	if len(data) != lenTotal {
		return model.Licence{}, fmt.Errorf("invalid data length for DrivingLicenceInfo: got %d, want %d", len(data), lenTotal)
	}
	authority, err := opts.UnmarshalStringValue(data[0:36])
	if err != nil {
		return model.Licence{}, fmt.Errorf("driving licence issuing authority: %w", err)
	}
	nation := opts.UnmarshalNationCode(data[36])
	number, err := opts.UnmarshalIA5String(data[37:53])
	if err != nil {
		return model.Licence{}, fmt.Errorf("driving licence number: %w", err)
	}
	return model.Licence{Authority: authority, Nation: nation, Number: number}, nil
}
