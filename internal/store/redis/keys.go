package redis

const (
	// KeyPrefixAlarm is the prefix for alarm keys
	KeyPrefixAlarm = "routineon:alarm:"
	// KeyPrefixVideo is the prefix for video keys
	KeyPrefixVideo = "routineon:video:"
	// KeyAllAlarms is the key for the set of all alarm IDs
	KeyAllAlarms = "routineon:alarms:all"
	// KeyAllVideos is the key for the set of all video IDs
	KeyAllVideos = "routineon:videos:all"
	// KeyHistory is the key for the append-only history list
	KeyHistory = "routineon:history"
)

// AlarmKey returns the Redis key for an alarm by ID
func AlarmKey(id string) string {
	return KeyPrefixAlarm + id
}

// VideoKey returns the Redis key for a video by ID
func VideoKey(id string) string {
	return KeyPrefixVideo + id
}
