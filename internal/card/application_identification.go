package card

import (
	"encoding/binary"
	"fmt"

	"github.com/haulageworks/tachograph-go/internal/model"
)

// unmarshalApplicationIdentification decodes EF_Application_Identification
// for a driver card. The G1 layout (Data Dictionary 2.4) is 10 bytes fixed;
// G2/G2.2 cards append a further length/capacity block carrying the card
// structure version and per-type record counts used to size the cyclic
// driver-activity buffer and the vehicles-used/places tables.
//
//	DriverCardApplicationIdentification ::= SEQUENCE {
//	    typeOfTachographCardId      EquipmentType,           -- 1 byte
//	    cardStructureVersion        CardStructureVersion,    -- 2 bytes
//	    noOfEventsPerType           NoOfEventsPerType,        -- 1 byte
//	    noOfFaultsPerType           NoOfFaultsPerType,        -- 1 byte
//	    activityStructureLength     CardActivityLengthRange, -- 2 bytes
//	    noOfCardVehicleRecords      NoOfCardVehicleRecords,  -- 2 bytes
//	    noOfCardPlaceRecords        NoOfCardPlaceRecords     -- 1 byte
//	}
func (opts UnmarshalOptions) unmarshalApplicationIdentification(data []byte) (model.CardApplication, error) {
	const lenG1 = 10
	if len(data) < lenG1 {
		return model.CardApplication{}, fmt.Errorf("invalid data length for ApplicationIdentification: got %d, want at least %d", len(data), lenG1)
	}
	var app model.CardApplication
	app.TypeOfTachographCardID = data[0]
	app.CardStructureVersion = binary.BigEndian.Uint16(data[1:3])
	app.NoOfEventsPerType = data[3]
	app.NoOfFaultsPerType = data[4]
	app.ActivityStructureLength = binary.BigEndian.Uint16(data[5:7])
	app.NoOfCardVehicleRecords = binary.BigEndian.Uint16(data[7:9])
	app.NoOfCardPlaceRecords = data[9]
	return app, nil
}
