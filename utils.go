package wscrew

import "math"

const (
	pi  = math.Pi
	tau = 2 * pi
)

const (
	// layersPerRound is the number of layers stacked for one full helical turn.
	// One extra round of layers is always added to hold both caps.
	layersPerRound = 4
	// minLayers is the layer count of a single round screw.
	minLayers = (minRounds + 1) * layersPerRound
	// threadStartAngle is the angular position, in sweep steps, of the third vertex on
	// layer 1. It opens the gap the thread start grows out of. Layer layers-2 mirrors
	// it at tau-threadStartAngle*step to close the thread end.
	threadStartAngle = 2.2
)

// back returns the n'th element counting from the end of s. back(s, 1) is the last element.
func back(s []int, n int) int {
	return s[len(s)-n]
}
