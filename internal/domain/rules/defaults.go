package rules

import "github.com/okian/fitscore/internal/domain/model"

// Timed items are banded in whole seconds, distances in centimetres or
// metres, counts in repetitions. Higher is better for counts and distances,
// lower for times; in both cases the best band comes first so a value on a
// shared boundary takes the better score.

var maleBands = map[model.Event][]Band{
	model.PullUps: {
		{16, 1000, 100}, {14, 15, 95}, {12, 13, 90}, {11, 11, 85}, {10, 10, 80},
		{9, 9, 75}, {8, 8, 70}, {7, 7, 65}, {6, 6, 60}, {4, 5, 50}, {2, 3, 30}, {0, 1, 10},
	},
	model.SitUps: {
		{50, 200, 100}, {45, 49, 90}, {40, 44, 80}, {35, 39, 70},
		{30, 34, 60}, {25, 29, 50}, {15, 24, 30}, {0, 14, 10},
	},
	model.RopeSkipping: {
		{180, 400, 100}, {165, 179, 90}, {150, 164, 80}, {135, 149, 70},
		{120, 134, 60}, {100, 119, 50}, {80, 99, 30}, {0, 79, 10},
	},
	model.LongJump: {
		{250, 400, 100}, {240, 250, 90}, {230, 240, 80}, {220, 230, 70},
		{205, 220, 60}, {190, 205, 50}, {170, 190, 30}, {0, 170, 10},
	},
	model.BallThrow: {
		{11, 30, 100}, {10, 11, 90}, {9, 10, 80}, {8, 9, 70},
		{7, 8, 60}, {6, 7, 50}, {5, 6, 30}, {0, 5, 10},
	},
	model.Sprint100: {
		{0, 12.5, 100}, {12.5, 13.0, 90}, {13.0, 13.5, 80}, {13.5, 14.0, 70},
		{14.0, 14.6, 60}, {14.6, 15.4, 50}, {15.4, 16.5, 30}, {16.5, 30, 10},
	},
	model.Run1500: {
		{0, 290, 100}, {291, 300, 90}, {301, 310, 80}, {311, 320, 70},
		{321, 335, 60}, {336, 360, 50}, {361, 400, 30}, {401, 600, 10},
	},
	model.Run800: {
		{0, 150, 100}, {151, 160, 90}, {161, 170, 80}, {171, 180, 70},
		{181, 195, 60}, {196, 210, 50}, {211, 240, 30}, {241, 400, 10},
	},
}

var femaleBands = map[model.Event][]Band{
	model.SitUps: {
		{52, 200, 100}, {47, 51, 90}, {42, 46, 80}, {37, 41, 70},
		{32, 36, 60}, {26, 31, 50}, {16, 25, 30}, {0, 15, 10},
	},
	model.PullUps: {
		{8, 100, 100}, {6, 7, 90}, {5, 5, 80}, {4, 4, 70},
		{3, 3, 60}, {2, 2, 50}, {1, 1, 30}, {0, 0, 10},
	},
	model.RopeSkipping: {
		{175, 400, 100}, {160, 174, 90}, {145, 159, 80}, {130, 144, 70},
		{115, 129, 60}, {95, 114, 50}, {75, 94, 30}, {0, 74, 10},
	},
	model.LongJump: {
		{200, 350, 100}, {190, 200, 90}, {180, 190, 80}, {170, 180, 70},
		{160, 170, 60}, {150, 160, 50}, {135, 150, 30}, {0, 135, 10},
	},
	model.BallThrow: {
		{8.5, 30, 100}, {7.8, 8.5, 90}, {7.0, 7.8, 80}, {6.3, 7.0, 70},
		{5.6, 6.3, 60}, {5.0, 5.6, 50}, {4.2, 5.0, 30}, {0, 4.2, 10},
	},
	model.Sprint100: {
		{0, 14.5, 100}, {14.5, 15.2, 90}, {15.2, 15.9, 80}, {15.9, 16.6, 70},
		{16.6, 17.4, 60}, {17.4, 18.3, 50}, {18.3, 19.5, 30}, {19.5, 35, 10},
	},
	model.Run800: {
		{0, 200, 100}, {201, 215, 90}, {216, 225, 80}, {226, 235, 70},
		{236, 250, 60}, {251, 270, 50}, {271, 300, 30}, {301, 480, 10},
	},
	model.Run1500: {
		{0, 400, 100}, {401, 430, 90}, {431, 460, 80}, {461, 490, 70},
		{491, 520, 60}, {521, 560, 50}, {561, 620, 30}, {621, 900, 10},
	},
}

// Default returns the built-in scoring table.
func Default() *Table {
	t, err := New(map[model.Gender]map[model.Event][]Band{
		model.Male:   maleBands,
		model.Female: femaleBands,
	})
	if err != nil {
		panic("rules: invalid built-in table: " + err.Error())
	}
	return t
}
