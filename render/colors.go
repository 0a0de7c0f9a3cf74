package render

import "github.com/gdamore/tcell/v2"

// Scoreboard palette
var (
	RgbBackground   = tcell.NewRGBColor(26, 27, 38)    // Tokyo Night background
	RgbText         = tcell.NewRGBColor(220, 220, 220) // Labels
	RgbDim          = tcell.NewRGBColor(90, 90, 110)   // Empty meter cells
	RgbPlayer       = tcell.NewRGBColor(100, 150, 255) // Player blue
	RgbNPC          = tcell.NewRGBColor(255, 80, 80)   // NPC red
	RgbFireBuilding = tcell.NewRGBColor(255, 255, 0)   // Yellow while charging
	RgbFireActive   = tcell.NewRGBColor(255, 60, 0)    // Red-orange while active
	RgbBonus        = tcell.NewRGBColor(0, 200, 200)   // Cyan bonus badge
	RgbPerfect      = tcell.NewRGBColor(50, 255, 50)   // Perfect zone
	RgbWarning      = tcell.NewRGBColor(255, 120, 120) // Final seconds clock
)

// competitorColor returns the accent for a competitor
func competitorColor(c int) tcell.Color {
	if c == 0 {
		return RgbPlayer
	}
	return RgbNPC
}
