package card

import (
	"fmt"

	"github.com/haulageworks/tachograph-go/internal/framing"
	"github.com/haulageworks/tachograph-go/internal/model"
)

// Decode parses a complete tachograph card download into model.File. It
// never returns an error for a recognizable-but-malformed record: such
// records surface as model.RawUnparsed entries or model.Warning values on
// the returned File instead. A *model.MalformedFile error is returned only
// when the file cannot be framed at all: too short to carry a generation
// marker, or no framing brackets the very first record.
func (opts UnmarshalOptions) Decode(data []byte) (*model.File, error) {
	gen := framing.DetectGeneration(data)
	if gen == model.GenerationUnspecified {
		return nil, &model.MalformedFile{Offset: 0, Reason: "file too short to contain a generation marker"}
	}

	nodes, raw := framing.Walk(data, gen, framing.ReadOptions{
		IsContainer:        isContainer,
		SkipLeadingPadding: gen != model.GenerationG1,
		StrictFraming:      opts.StrictG22Framing,
	})
	if len(raw) > 0 && raw[0].Offset == 0 {
		return nil, &model.MalformedFile{Offset: 0, Reason: "first record: " + raw[0].Reason}
	}

	// For G2/G2.2 the whole file is bracketed by a single envelope
	// container node; its children are the flat EF sequence. G1 has no
	// envelope, so nodes is already the flat sequence.
	flat := nodes
	if gen != model.GenerationG1 && len(nodes) == 1 && nodes[0].IsContainer {
		flat = nodes[0].Children
	}

	file := &model.File{Generation: gen, RawUnparsed: raw}
	opts.dispatch(file, gen, flat)
	return file, nil
}

// dispatch walks the flat EF sequence, pairing each data tag with an
// immediately following signature tag for the same Elementary File,
// decoding recognized data tags into their model.File field, and
// recording everything else as a warning or raw span rather than
// aborting.
func (opts UnmarshalOptions) dispatch(file *model.File, gen model.Generation, nodes []framing.Node) {
	for i := 0; i < len(nodes); i++ {
		n := nodes[i]
		if isSignatureTag(n.Tag) {
			// A signature tag not immediately following its data tag
			// (e.g. the file's first node is a signature, or it follows
			// a data tag of a different Elementary File) is an orphan.
			file.SignatureBlocks = append(file.SignatureBlocks, model.SignatureBlock{
				Tag:            n.Tag,
				SignatureBytes: n.Payload,
				Algorithm:      signatureAlgorithmFor(gen),
				Orphan:         true,
			})
			continue
		}

		var sigPayload []byte
		if i+1 < len(nodes) && isSignatureTag(nodes[i+1].Tag) && dataTagOf(nodes[i+1].Tag) == dataTagOf(n.Tag) {
			sigPayload = nodes[i+1].Payload
			file.SignatureBlocks = append(file.SignatureBlocks, model.SignatureBlock{
				Tag:            nodes[i+1].Tag,
				DataRef:        n.Payload,
				SignatureBytes: sigPayload,
				Algorithm:      signatureAlgorithmFor(gen),
			})
			i++
		}

		if err := opts.decodeDataTag(file, gen, n); err != nil {
			file.RawUnparsed = append(file.RawUnparsed, model.RawUnparsed{
				TagHex: fmt.Sprintf("0x%04X", n.Tag),
				Offset: n.Offset,
				Length: n.Length,
				Bytes:  n.Payload,
				Reason: err.Error(),
			})
		}
	}
}

func signatureAlgorithmFor(gen model.Generation) model.SignatureAlgorithm {
	if gen == model.GenerationG1 {
		return model.SignatureAlgorithmRSASHA1
	}
	return model.SignatureAlgorithmECDSA
}

// decodeDataTag dispatches one data-block node to its record decoder
// based on the Elementary File it belongs to, resolving the tag's meaning
// for the file's own generation rather than assuming a fixed wire value
// (several EFs, notably Identification and DriverActivityData, carry a
// different tag in G1 than in G2/G2.2).
func (opts UnmarshalOptions) decodeDataTag(file *model.File, gen model.Generation, n framing.Node) error {
	kind, ok := recordKindFor(gen, n.Tag)
	if !ok {
		return fmt.Errorf("unrecognized elementary file tag 0x%04X for generation %v", n.Tag, gen)
	}
	switch kind {
	case recordApplicationIdentification:
		app, err := opts.unmarshalApplicationIdentification(n.Payload)
		if err != nil {
			return err
		}
		file.CardApplication = app
	case recordIdentification:
		d, err := opts.unmarshalDriverCardIdentification(n.Payload)
		if err != nil {
			return err
		}
		file.Driver.Surname = d.Surname
		file.Driver.FirstNames = d.FirstNames
		file.Driver.BirthDate = d.BirthDate
		file.Driver.BirthDateRaw = d.BirthDateRaw
		file.Driver.BirthDateIsTimeReal = d.BirthDateIsTimeReal
		file.Driver.CardNumber = d.CardNumber
		file.Driver.CardIssuingNation = d.CardIssuingNation
		file.Driver.CardExpiry = d.CardExpiry
		file.Driver.PreferredLanguage = d.PreferredLanguage
		if d.BirthDateIsTimeReal {
			file.Warnings = append(file.Warnings, model.Warning{
				Code:    model.WarningBirthDateFallback,
				Message: "card holder birth date failed BCD Datef decode, fell back to TimeReal",
				TagHex:  fmt.Sprintf("0x%04X", n.Tag),
				Offset:  n.Offset,
			})
		}
	case recordDrivingLicenceInfo:
		lic, err := opts.unmarshalDrivingLicenceInfo(n.Payload)
		if err != nil {
			return err
		}
		file.Driver.Licence = lic
	case recordEventsData:
		events, err := opts.unmarshalEventsData(n.Payload)
		if err != nil {
			return err
		}
		file.Events = append(file.Events, events...)
	case recordFaultsData:
		faults, err := opts.unmarshalFaultsData(n.Payload)
		if err != nil {
			return err
		}
		file.Faults = append(file.Faults, faults...)
	case recordDriverActivityData:
		records, err := opts.unmarshalDriverActivityData(n.Payload)
		if err != nil {
			return err
		}
		file.DailyActivityRecords = append(file.DailyActivityRecords, records...)
	case recordVehiclesUsed:
		records, err := opts.unmarshalVehiclesUsed(n.Payload, gen)
		if err != nil {
			return err
		}
		file.VehiclesUsed = append(file.VehiclesUsed, records...)
	case recordPlaces:
		places, err := opts.unmarshalPlaces(n.Payload)
		if err != nil {
			return err
		}
		file.Places = attachGNSS(places, file.GNSSPoints)
	case recordGNSSPlaces:
		points, err := opts.unmarshalGNSSPlaces(n.Payload)
		if err != nil {
			return err
		}
		file.GNSSPoints = append(file.GNSSPoints, points...)
		file.Places = attachGNSS(file.Places, file.GNSSPoints)
	case recordSpecificConditions:
		records, err := opts.unmarshalCalibrationData(n.Payload, gen)
		if err != nil {
			return err
		}
		file.CalibrationRecords = append(file.CalibrationRecords, records...)
	case recordICC, recordIC, recordCurrentUsage, recordControlActivityData, recordVehicleUnitsUsed,
		recordCardCertificate, recordCACertificate, recordLinkCertificate, recordCardDownload,
		recordLoadUnload, recordTrailerRegistrations, recordBorderCrossings,
		recordGNSSAccumulatedDriving, recordLoadSensor:
		// Recognized but out of scope for the compliance/timeline
		// pipeline (card manufacturing identifiers, certificates
		// handled by the pluggable SignatureVerifier, control/download
		// bookkeeping, and the G2/G2.2 load/trailer/border-crossing
		// records the timeline and compliance engine don't consume).
		// Keep the bytes available for inspection without treating
		// them as an error.
		return nil
	default:
		return fmt.Errorf("unrecognized elementary file tag %s (0x%04X)", tagName(gen, n.Tag), n.Tag)
	}
	return nil
}

// attachGNSS correlates GNSS accumulated-driving points to place records
// by exact timestamp match, the pairing the GNSS-enhanced EF_Places
// feature relies on.
func attachGNSS(places []model.PlaceRecord, points []model.GNSSPoint) []model.PlaceRecord {
	if len(points) == 0 {
		return places
	}
	byTime := make(map[int64]model.GNSSPoint, len(points))
	for _, p := range points {
		byTime[p.Timestamp.Unix()] = p
	}
	for i := range places {
		if p, ok := byTime[places[i].EntryTime.Unix()]; ok {
			point := p
			places[i].GNSS = &point
		}
	}
	return places
}
