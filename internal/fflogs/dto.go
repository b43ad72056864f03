package fflogs

import (
	"fightprog/internal/events"
)

// Page is one response of the events endpoint. A nil NextPageTimestamp means the requested window
// holds no further data.
type Page struct {
	Events            events.List `json:"events"`
	NextPageTimestamp *uint64     `json:"nextPageTimestamp,omitempty"`
}

// FightList is the response of the fights endpoint. Start and End are wall-clock epoch
// milliseconds of the report; fight times are relative to Start.
type FightList struct {
	Fights       []FightSummary `json:"fights"`
	Language     *string        `json:"lang,omitempty"`
	Friendlies   []Unit         `json:"friendlies"`
	Enemies      []Unit         `json:"enemies"`
	FriendlyPets []Unit         `json:"friendlyPets"`
	EnemyPets    []Unit         `json:"enemyPets"`
	Phases       []Instance     `json:"phases"`
	LogVersion   *int32         `json:"logVersion,omitempty"`
	Title        *string        `json:"title,omitempty"`
	Owner        *string        `json:"owner,omitempty"`
	Start        *uint64        `json:"start,omitempty"`
	End          *uint64        `json:"end,omitempty"`
	Zone         *int64         `json:"zone,omitempty"`
}

// FightSummary is a single pull inside a report.
type FightSummary struct {
	ID                            int64   `json:"id"`
	StartTime                     uint64  `json:"start_time"`
	EndTime                       uint64  `json:"end_time"`
	Boss                          *int64  `json:"boss,omitempty"`
	Name                          *string `json:"name,omitempty"`
	ZoneID                        *int64  `json:"zoneID,omitempty"`
	ZoneName                      *string `json:"zoneName,omitempty"`
	Size                          *int64  `json:"size,omitempty"`
	Difficulty                    *int64  `json:"difficulty,omitempty"`
	Kill                          *bool   `json:"kill,omitempty"`
	Partial                       *int64  `json:"partial,omitempty"`
	StandardComposition           *bool   `json:"standardComposition,omitempty"`
	BossPercentage                *int32  `json:"bossPercentage,omitempty"`
	FightPercentage               *int64  `json:"fightPercentage,omitempty"`
	LastPhaseForPercentageDisplay *int64  `json:"lastPhaseForPercentageDisplay,omitempty"`
}

// Unit is a friendly or enemy actor listed in a report.
type Unit struct {
	Name     string      `json:"name"`
	ID       *int64      `json:"id,omitempty"`
	GUID     *int64      `json:"guid,omitempty"`
	Type     *string     `json:"type,omitempty"`
	Server   *string     `json:"server,omitempty"`
	Icon     *string     `json:"icon,omitempty"`
	PetOwner *int64      `json:"petOwner,omitempty"`
	Fights   []FightLink `json:"fights"`
}

type FightLink struct {
	ID int64 `json:"id"`
}

// Instance lists the phase names FFLogs itself knows for a boss.
type Instance struct {
	Boss   *int64   `json:"boss,omitempty"`
	Phases []string `json:"phases,omitempty"`
}

// Duration is the fight length in milliseconds.
func (f FightSummary) Duration() uint64 {
	if f.EndTime < f.StartTime {
		return 0
	}
	return f.EndTime - f.StartTime
}
