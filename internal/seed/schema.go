package seed

// Config represents the top-level structure of the seed file
type Config struct {
	Videos []VideoProps `yaml:"videos"`
	Alarms []AlarmProps `yaml:"alarms"`
}

// VideoProps describes one pre-registered video. Metadata fields are
// optional; a video seeded without them still resolves to a playable entry.
type VideoProps struct {
	URL       string `yaml:"url"`
	Title     string `yaml:"title,omitempty"`
	Channel   string `yaml:"channel,omitempty"`
	Thumbnail string `yaml:"thumbnail,omitempty"`
}

// AlarmProps describes one seeded alarm. Days accepts weekday names
// ("mon".."sun") or numeric indices 0..6.
type AlarmProps struct {
	Video   string   `yaml:"video"` // video URL or bare 11-char id
	Title   string   `yaml:"title,omitempty"`
	Days    []string `yaml:"days"`
	Time    string   `yaml:"time"`
	Enabled *bool    `yaml:"enabled,omitempty"` // default true
}
