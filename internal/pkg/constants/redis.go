package constants

// Redis key formats for the presence directory. The path scheme mirrors the
// directory layout {role}s/{destination}/{participantId}.
const (
	// KeyPresenceRecord holds one participant's record hash.
	// Format: presence:{role}s:{destination}:{participant_id}
	KeyPresenceRecord = "presence:%ss:%s:%s"

	// KeyPresenceMembers is the partition membership zset scored by the
	// last write's unix time. Format: presence:{role}s:{destination}
	KeyPresenceMembers = "presence:%ss:%s"

	// KeyPresenceGeo is the partition geo set backing nearby queries.
	// Format: presencegeo:{role}s:{destination}
	KeyPresenceGeo = "presencegeo:%ss:%s"

	// ChannelPresence is the pub/sub channel notified on every write or
	// remove in a partition. Format: presence.ch:{role}s:{destination}
	ChannelPresence = "presence.ch:%ss:%s"
)

// Redis hash fields
const (
	FieldLatitude    = "lat"
	FieldLongitude   = "lng"
	FieldTimestamp   = "ts"
	FieldGeohash     = "geo"
	FieldRole        = "role"
	FieldDestination = "dest"
)
