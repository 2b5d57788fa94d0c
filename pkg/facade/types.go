package facade

// Attributes are user, group or event properties.
type Attributes map[string]any

// IdentifyOptions apply to Identify, IdentifyAnonymous and UpdateUser.
type IdentifyOptions struct {
	// Signature is the server-computed identity verification signature.
	Signature string `json:"signature,omitempty"`
}

// GroupMembership holds attributes of the user's membership in a group.
type GroupMembership struct {
	Attributes Attributes `json:"attributes,omitempty"`
}

// GroupOptions apply to Group and UpdateGroup.
type GroupOptions struct {
	Signature  string           `json:"signature,omitempty"`
	Membership *GroupMembership `json:"membership,omitempty"`
}

// TrackOptions apply to Track.
type TrackOptions struct {
	// UserOnly records the event on the user even when a group is set.
	UserOnly bool `json:"userOnly,omitempty"`
}

// StartOptions apply to Start, StartFlow and StartWalk.
type StartOptions struct {
	// Once skips the content if the user has already seen it.
	Once bool `json:"once,omitempty"`
}

// ResourceCenterState is reported by GetResourceCenterState.
type ResourceCenterState struct {
	IsOpen                        bool `json:"isOpen"`
	HasChecklist                  bool `json:"hasChecklist"`
	UncompletedChecklistTaskCount int  `json:"uncompletedChecklistTaskCount"`
	UnreadAnnouncementCount       int  `json:"unreadAnnouncementCount"`
}

// ScrollPadding is the margin kept around elements scrolled into view.
type ScrollPadding struct {
	Top    int `json:"top,omitempty"`
	Right  int `json:"right,omitempty"`
	Bottom int `json:"bottom,omitempty"`
	Left   int `json:"left,omitempty"`
}

// EventListener receives events registered with On.
type EventListener func(event any)

// URLFilter rewrites a page URL before it is recorded.
type URLFilter func(url string) string
