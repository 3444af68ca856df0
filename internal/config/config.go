package config

// Run is the immutable server/stream configuration, built once in cmd
// before the listener starts and passed by reference into every
// connection. Never mutated afterwards.
type Run struct {
	Interface    string
	Port         int
	Stdout       bool
	MoviePath    string
	DialoguePath string

	HumanCheck   bool
	PrimeSeconds int
	PublicURL    string
}

// Make configures the video-to-ascii transcoding pipeline.
type Make struct {
	InputVideo  string
	OutputMovie string
	FFmpegPath  string

	FrameWidth  int
	FrameHeight int
	Workers     int

	SubtitleFile    string
	SecondsPerSlide int
}
