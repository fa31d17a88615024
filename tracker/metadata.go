package tracker

// Metadata is the bookkeeping every motion model carries. Hits and
// TimeSinceUpdate belong to whoever manages the track lifecycle; the
// filters never touch them.
type Metadata struct {
	ID              int
	Hits            int // total matched detections, including the first
	TimeSinceUpdate int // steps since the last matched detection
	Info            any // caller payload, carried unchanged
	InitialPose     [BoxDim]float64
}

// NewMetadata returns the metadata of a track born from initialPose.
func NewMetadata(initialPose [BoxDim]float64, info any, id int) Metadata {
	return Metadata{
		ID:              id,
		Hits:            1,
		TimeSinceUpdate: 0,
		Info:            info,
		InitialPose:     initialPose,
	}
}
