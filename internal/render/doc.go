// Package render turns a simulated trajectory into video: it downsamples
// the trajectory to the video frame rate, draws one PNG per frame (side
// view of the muscle, numeric readouts, a timeline strip with a moving
// cursor) and assembles the sequence with ffmpeg into an MP4, or encodes
// an animated GIF without any external tool. It also writes summary
// charts of the run.
package render
