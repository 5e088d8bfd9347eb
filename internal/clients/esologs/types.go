package esologs

import (
	"bytes"
	"encoding/json"
)

// Report is one uploaded combat log with its fight list.
type Report struct {
	Code      string  `json:"code"`
	Title     string  `json:"title"`
	StartTime int64   `json:"startTime"`
	EndTime   int64   `json:"endTime"`
	Zone      Zone    `json:"zone"`
	Guild     Guild   `json:"guild"`
	Fights    []Fight `json:"fights"`
}

// Zone identifies the trial or arena the report was recorded in.
type Zone struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Guild is the uploading guild, when the report is guild-attached.
type Guild struct {
	Name string `json:"name"`
}

// Fight is one pull within a report. Times are milliseconds relative
// to report start. Difficulty is nil for trash pulls; boss encounters
// carry 120 (normal), 121 (veteran), or 122 (veteran hard mode).
type Fight struct {
	ID             int     `json:"id"`
	Name           string  `json:"name"`
	StartTime      int64   `json:"startTime"`
	EndTime        int64   `json:"endTime"`
	Difficulty     *int    `json:"difficulty"`
	Kill           bool    `json:"kill"`
	BossPercentage float64 `json:"bossPercentage"`
	EncounterID    int     `json:"encounterID"`
}

// Duration returns the fight length in milliseconds.
func (f *Fight) Duration() int64 {
	return f.EndTime - f.StartTime
}

// SummaryTable is the per-fight roster with gear, grouped by the
// upstream's own role sections.
type SummaryTable struct {
	Tanks   []PlayerDetail `json:"tanks"`
	Healers []PlayerDetail `json:"healers"`
	DPS     []PlayerDetail `json:"dps"`
}

// PlayerDetail is one roster entry in the summary table.
type PlayerDetail struct {
	ID            int           `json:"id"`
	Name          string        `json:"name"`
	DisplayName   string        `json:"displayName"`
	Type          string        `json:"type"`
	CombatantInfo CombatantInfo `json:"combatantInfo"`
}

// CombatantInfo is the per-player equipment payload. The upstream
// returns an object in the common case but an empty array when the
// data is unavailable, so this is a sum type: Present distinguishes
// real data from the list-shaped "no data" marker. Decoding never
// fails on the list shape; the gap is surfaced as Present == false.
type CombatantInfo struct {
	Present bool
	Gear    []GearItem
}

// UnmarshalJSON performs the shape check once, at the boundary.
func (c *CombatantInfo) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] == '[' || bytes.Equal(trimmed, []byte("null")) {
		*c = CombatantInfo{}
		return nil
	}

	var obj struct {
		Gear []GearItem `json:"gear"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}

	c.Present = true
	c.Gear = obj.Gear
	return nil
}

// GearItem is one equipped item as reported upstream. Slot is the
// upstream's numeric slot index.
type GearItem struct {
	ID      int    `json:"id"`
	Slot    int    `json:"slot"`
	Name    string `json:"name"`
	SetID   int    `json:"setID"`
	SetName string `json:"setName"`
}

// AbilityTotal is one row of a casts, healing, or damage table for a
// single player.
type AbilityTotal struct {
	Name  string  `json:"name"`
	GUID  int     `json:"guid"`
	Total float64 `json:"total"`
}

// AuraUptime is one row of a buffs or debuffs table.
type AuraUptime struct {
	Name        string `json:"name"`
	GUID        int    `json:"guid"`
	TotalUptime int64  `json:"totalUptime"`
}
