// Package model contains domain models passed between layers.
package model

import "strings"

// Gender is the scoring category a student is evaluated under.
type Gender string

// Recognized genders.
const (
	Male   Gender = "male"
	Female Gender = "female"
)

// Cell tokens used by the source sheets for each gender.
const (
	MaleToken   = "男"
	FemaleToken = "女"
)

// Genders lists every recognized gender in a stable order.
var Genders = []Gender{Male, Female}

// ParseGender maps a raw gender cell to a Gender. Only the exact tokens
// (surrounding whitespace ignored) are accepted.
func ParseGender(cell string) (Gender, bool) {
	switch strings.TrimSpace(cell) {
	case MaleToken:
		return Male, true
	case FemaleToken:
		return Female, true
	default:
		return "", false
	}
}

// Token returns the sheet token for g.
func (g Gender) Token() string {
	if g == Female {
		return FemaleToken
	}
	return MaleToken
}

// Event is a raw test item as named by its source column header.
type Event string

// Test items found in the source sheets.
const (
	PullUps      Event = "引体向上"
	SitUps       Event = "仰卧起坐"
	RopeSkipping Event = "1分钟跳绳"
	LongJump     Event = "立定跳远"
	BallThrow    Event = "抛实心球"
	Sprint100    Event = "100米"
	Run1500      Event = "1500米"
	Run800       Event = "800米"
)

// Events lists the raw items in report column order.
var Events = []Event{PullUps, SitUps, RopeSkipping, LongJump, BallThrow, Sprint100, Run1500, Run800}

// Timed reports whether raw values of e are run times that need normalizing
// to seconds before band matching.
func (e Event) Timed() bool {
	return e == Run1500 || e == Run800
}

// Slot is a reporting column. A merged slot is backed by one of two
// mutually exclusive events; a plain slot by exactly one.
type Slot string

// Reporting slots.
const (
	SlotStrength     Slot = "引体向上/仰卧起坐"
	SlotRopeSkipping Slot = Slot(RopeSkipping)
	SlotLongJump     Slot = Slot(LongJump)
	SlotBallThrow    Slot = Slot(BallThrow)
	SlotSprint100    Slot = Slot(Sprint100)
	SlotDistance     Slot = "1500米/800米"
)

// Slots lists reporting slots in evaluation order. The order of items in a
// student's remark follows it.
var Slots = []Slot{SlotStrength, SlotRopeSkipping, SlotLongJump, SlotBallThrow, SlotSprint100, SlotDistance}

// MergedSlots lists the slots that carry a display column for the raw value
// actually used.
var MergedSlots = []Slot{SlotStrength, SlotDistance}

// Merged reports whether s is backed by alternative events.
func (s Slot) Merged() bool {
	return s == SlotStrength || s == SlotDistance
}

// ScoreColumn returns the report column holding the slot's points.
func (s Slot) ScoreColumn() string {
	return string(s) + "_得分"
}

// Identity and aggregate column names.
const (
	ColumnSeq       = "序号"
	ColumnClass     = "班级"
	ColumnStudentID = "学号"
	ColumnGender    = "性别"
	ColumnName      = "姓名"
	ColumnTotal     = "总分"
	ColumnAverage   = "平均分"
	ColumnRemark    = "备注"
)

// RequiredColumns must all be present in a segment header.
var RequiredColumns = []string{ColumnName, ColumnGender, ColumnClass}
