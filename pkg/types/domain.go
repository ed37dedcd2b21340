package types

// Observation is a single stop-and-search encounter submitted for a
// prediction. Field names follow the upstream police data extract, which is
// why several JSON keys carry spaces. All fields are required; pointers let
// the API layer distinguish "absent" from a zero value.
type Observation struct {
	// Caller-chosen unique identifier for this observation.
	// example: obs-0001
	ObservationID *string `json:"observation_id" validate:"required" example:"obs-0001"`
	// Kind of search performed.
	// example: Person search
	Type *string `json:"Type" validate:"required" example:"Person search"`
	// Timestamp of the encounter (RFC 3339 or "2006-01-02T15:04:05").
	// example: 2024-03-01T21:45:00+00:00
	Date *string `json:"Date" validate:"required" example:"2024-03-01T21:45:00+00:00"`
	// Whether the stop was part of a planned policing operation.
	PolicingOperation *bool `json:"Part of a policing operation" validate:"required"`
	// example: 51.5072
	Latitude *float64 `json:"Latitude" validate:"required" example:"51.5072"`
	// example: -0.1276
	Longitude *float64 `json:"Longitude" validate:"required" example:"-0.1276"`
	// example: Male
	Gender *string `json:"Gender" validate:"required" example:"Male"`
	// example: 18-24
	AgeRange *string `json:"Age range" validate:"required" example:"18-24"`
	// example: White
	OfficerDefinedEthnicity *string `json:"Officer-defined ethnicity" validate:"required" example:"White"`
	// example: Misuse of Drugs Act 1971 (section 23)
	Legislation *string `json:"Legislation" validate:"required" example:"Misuse of Drugs Act 1971 (section 23)"`
	// example: Controlled drugs
	ObjectOfSearch *string `json:"Object of search" validate:"required" example:"Controlled drugs"`
	// Reporting station identifier.
	// example: metropolitan
	Station *string `json:"station" validate:"required" example:"metropolitan"`
}

// Fields returns the feature columns (everything except observation_id) as a
// column-name keyed map, dereferenced. Callers must validate the observation
// first; nil pointers here would panic.
func (o Observation) Fields() map[string]any {
	return map[string]any{
		"Type":                         *o.Type,
		"Date":                         *o.Date,
		"Part of a policing operation": *o.PolicingOperation,
		"Latitude":                     *o.Latitude,
		"Longitude":                    *o.Longitude,
		"Gender":                       *o.Gender,
		"Age range":                    *o.AgeRange,
		"Officer-defined ethnicity":    *o.OfficerDefinedEthnicity,
		"Legislation":                  *o.Legislation,
		"Object of search":             *o.ObjectOfSearch,
		"station":                      *o.Station,
	}
}
