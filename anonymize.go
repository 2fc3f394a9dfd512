package tachograph

import (
	"fmt"
	"time"
)

// anonymizedEpoch is the fixed instant timestamps are shifted to when
// AnonymizeOptions.PreserveTimestamps is false, chosen arbitrarily far
// from any real download date.
var anonymizedEpoch = time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)

// AnonymizeOptions configures Anonymize.
//
// The zero value anonymizes both timestamps and distances, replacing
// personally identifiable information with fixed placeholder values
// while preserving the file's structural shape for testing.
type AnonymizeOptions struct {
	// PreserveDistanceAndTrips keeps odometer and day-distance values in
	// their original form. If false (default), they are zeroed.
	PreserveDistanceAndTrips bool

	// PreserveTimestamps keeps all timestamps in their original form. If
	// false (default), every timestamp is shifted by the same constant
	// offset so that the earliest timestamp in the file lands on
	// anonymizedEpoch; relative ordering and gaps between timestamps are
	// preserved exactly, but absolute dates are not.
	PreserveTimestamps bool
}

// Anonymize creates an anonymized copy of a decoded File using the
// default options: PII is scrubbed, timestamps are shifted to a fixed
// epoch, and distances are zeroed.
func Anonymize(file *File) (*File, error) {
	return AnonymizeOptions{}.Anonymize(file)
}

// Anonymize is the configurable form of the package-level Anonymize
// function.
func (o AnonymizeOptions) Anonymize(file *File) (*File, error) {
	if file == nil {
		return nil, fmt.Errorf("file cannot be nil")
	}
	result := *file

	result.Driver = o.anonymizeDriver(file.Driver)

	result.VehiclesUsed = append([]VehicleUsedRecord(nil), file.VehiclesUsed...)
	for i := range result.VehiclesUsed {
		v := &result.VehiclesUsed[i]
		v.Plate = "ANONYMIZED"
		v.VIN = ""
		v.VuDataBlockCounter = ""
		if !o.PreserveDistanceAndTrips {
			v.OdometerBeginKm, v.OdometerEndKm = 0, 0
		}
	}

	result.Places = append([]PlaceRecord(nil), file.Places...)
	for i := range result.Places {
		result.Places[i].DailyWorkPeriodCountry = ""
		if !o.PreserveDistanceAndTrips {
			result.Places[i].VehicleOdometerKm = 0
		}
	}

	result.CalibrationRecords = append([]CalibrationRecord(nil), file.CalibrationRecords...)
	for i := range result.CalibrationRecords {
		result.CalibrationRecords[i].WorkshopName = ""
		result.CalibrationRecords[i].VIN = ""
	}

	result.DailyActivityRecords = append([]DailyActivityRecord(nil), file.DailyActivityRecords...)
	if !o.PreserveDistanceAndTrips {
		for i := range result.DailyActivityRecords {
			result.DailyActivityRecords[i].DayDistanceKm = 0
		}
	}

	if !o.PreserveTimestamps {
		shift := o.timeShift(file)
		o.shiftTimestamps(&result, shift)
	}

	return &result, nil
}

func (o AnonymizeOptions) anonymizeDriver(d Driver) Driver {
	anon := d
	anon.Surname = "ANONYMIZED"
	anon.FirstNames = "ANONYMIZED"
	anon.CardNumber = "0000000000000000"
	anon.Licence = Licence{}
	return anon
}

// timeShift computes the constant offset that moves the earliest
// timestamp present anywhere in file to anonymizedEpoch. Returns zero
// when file carries no timestamps at all.
func (o AnonymizeOptions) timeShift(file *File) time.Duration {
	var earliest time.Time
	consider := func(t time.Time) {
		if t.IsZero() {
			return
		}
		if earliest.IsZero() || t.Before(earliest) {
			earliest = t
		}
	}

	consider(file.Driver.BirthDate)
	consider(file.Driver.CardExpiry)
	for _, v := range file.VehiclesUsed {
		consider(v.FirstUse)
		consider(v.LastUse)
	}
	for _, r := range file.DailyActivityRecords {
		consider(r.DayTimestamp)
	}
	for _, e := range file.Events {
		consider(e.Begin)
	}
	for _, f := range file.Faults {
		consider(f.Begin)
	}
	for _, p := range file.Places {
		consider(p.EntryTime)
	}
	for _, g := range file.GNSSPoints {
		consider(g.Timestamp)
	}
	for _, c := range file.CalibrationRecords {
		consider(c.Timestamp)
	}
	for _, a := range file.Activities {
		consider(a.Start)
	}

	if earliest.IsZero() {
		return 0
	}
	return anonymizedEpoch.Sub(earliest)
}

func (o AnonymizeOptions) shiftTimestamps(file *File, shift time.Duration) {
	shiftTime := func(t time.Time) time.Time {
		if t.IsZero() {
			return t
		}
		return t.Add(shift)
	}

	file.Driver.BirthDate = shiftTime(file.Driver.BirthDate)
	file.Driver.CardExpiry = shiftTime(file.Driver.CardExpiry)

	for i := range file.VehiclesUsed {
		file.VehiclesUsed[i].FirstUse = shiftTime(file.VehiclesUsed[i].FirstUse)
		file.VehiclesUsed[i].LastUse = shiftTime(file.VehiclesUsed[i].LastUse)
	}
	for i := range file.DailyActivityRecords {
		file.DailyActivityRecords[i].DayTimestamp = shiftTime(file.DailyActivityRecords[i].DayTimestamp)
	}
	file.Events = append([]EventRecord(nil), file.Events...)
	for i := range file.Events {
		file.Events[i].Begin = shiftTime(file.Events[i].Begin)
		file.Events[i].End = shiftTime(file.Events[i].End)
	}
	file.Faults = append([]FaultRecord(nil), file.Faults...)
	for i := range file.Faults {
		file.Faults[i].Begin = shiftTime(file.Faults[i].Begin)
		file.Faults[i].End = shiftTime(file.Faults[i].End)
	}
	for i := range file.Places {
		file.Places[i].EntryTime = shiftTime(file.Places[i].EntryTime)
		if file.Places[i].GNSS != nil {
			gnss := *file.Places[i].GNSS
			gnss.Timestamp = shiftTime(gnss.Timestamp)
			file.Places[i].GNSS = &gnss
		}
	}
	file.GNSSPoints = append([]GNSSPoint(nil), file.GNSSPoints...)
	for i := range file.GNSSPoints {
		file.GNSSPoints[i].Timestamp = shiftTime(file.GNSSPoints[i].Timestamp)
	}
	for i := range file.CalibrationRecords {
		file.CalibrationRecords[i].Timestamp = shiftTime(file.CalibrationRecords[i].Timestamp)
	}
	file.Activities = append([]Activity(nil), file.Activities...)
	for i := range file.Activities {
		file.Activities[i].Start = shiftTime(file.Activities[i].Start)
		file.Activities[i].End = shiftTime(file.Activities[i].End)
	}
}
