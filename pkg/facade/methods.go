package facade

import "github.com/dmitrymomot/userflow-bootstrap/pkg/async"

// SetTargetEnv selects the environment the real client talks to.
func (f *Facade) SetTargetEnv(env string) { f.fire(MethodSetTargetEnv, env) }

// CloseResourceCenter closes the resource center.
func (f *Facade) CloseResourceCenter() { f.fire(MethodCloseResourceCenter) }

// DisableEvalJs stops flows from evaluating custom JavaScript.
func (f *Facade) DisableEvalJs() { f.fire(MethodDisableEvalJs) }

// Init sets the environment token. It is usually the first call.
func (f *Facade) Init(token string) { f.fire(MethodInit, token) }

// Off removes an event listener added with On.
func (f *Facade) Off(event string, listener EventListener) { f.fire(MethodOff, event, listener) }

// On adds a listener for a client event.
func (f *Facade) On(event string, listener EventListener) { f.fire(MethodOn, event, listener) }

// PrepareAudio unlocks audio playback after a user gesture.
func (f *Facade) PrepareAudio() { f.fire(MethodPrepareAudio) }

// RegisterCustomInput teaches the client to read values from custom inputs
// matching selector.
func (f *Facade) RegisterCustomInput(selector string, getValue func(el any) string) {
	f.fire(MethodRegisterCustomInput, selector, getValue)
}

// Remount tears down and re-renders the client UI.
func (f *Facade) Remount() { f.fire(MethodRemount) }

// Reset forgets the identified user.
func (f *Facade) Reset() { f.fire(MethodReset) }

// SetBaseZIndex sets the z-index the client UI stacks from.
func (f *Facade) SetBaseZIndex(z int) { f.fire(MethodSetBaseZIndex, z) }

// SetCustomInputSelector sets the selector for elements treated as inputs.
func (f *Facade) SetCustomInputSelector(selector string) {
	f.fire(MethodSetCustomInputSelector, selector)
}

// SetCustomNavigate replaces the function used to follow links.
func (f *Facade) SetCustomNavigate(navigate func(url string)) {
	f.fire(MethodSetCustomNavigate, navigate)
}

// SetCustomScrollIntoView replaces the function used to scroll to elements.
func (f *Facade) SetCustomScrollIntoView(scroll func(el any)) {
	f.fire(MethodSetCustomScrollIntoView, scroll)
}

// SetInferenceAttributeFilter filters the values of attribute used for
// element inference.
func (f *Facade) SetInferenceAttributeFilter(attribute string, filter func(value string) bool) {
	f.fire(MethodSetInferenceAttributeFilter, attribute, filter)
}

// SetInferenceAttributeNames sets the attributes used for element inference.
func (f *Facade) SetInferenceAttributeNames(names []string) {
	f.fire(MethodSetInferenceAttributeNames, names)
}

// SetInferenceClassNameFilter filters class names used for element inference.
func (f *Facade) SetInferenceClassNameFilter(filter func(className string) bool) {
	f.fire(MethodSetInferenceClassNameFilter, filter)
}

// SetResourceCenterLauncherHidden hides or shows the launcher button.
func (f *Facade) SetResourceCenterLauncherHidden(hidden bool) {
	f.fire(MethodSetResourceCenterLauncherHidden, hidden)
}

// SetScrollPadding sets the padding kept when scrolling to an element.
func (f *Facade) SetScrollPadding(p *ScrollPadding) { f.fire(MethodSetScrollPadding, p) }

// SetServerEndpoint points the client at another API endpoint.
func (f *Facade) SetServerEndpoint(endpoint string) { f.fire(MethodSetServerEndpoint, endpoint) }

// SetShadowDomEnabled turns shadow DOM traversal on or off.
func (f *Facade) SetShadowDomEnabled(enabled bool) { f.fire(MethodSetShadowDomEnabled, enabled) }

// SetPageTrackingDisabled turns automatic page view tracking off.
func (f *Facade) SetPageTrackingDisabled(disabled bool) {
	f.fire(MethodSetPageTrackingDisabled, disabled)
}

// SetURLFilter rewrites page URLs before they are reported.
func (f *Facade) SetURLFilter(filter URLFilter) { f.fire(MethodSetURLFilter, filter) }

// SetLinkURLDecorator rewrites link URLs before they are followed.
func (f *Facade) SetLinkURLDecorator(decorate URLFilter) { f.fire(MethodSetLinkURLDecorator, decorate) }

// OpenResourceCenter opens the resource center.
func (f *Facade) OpenResourceCenter() { f.fire(MethodOpenResourceCenter) }

// ToggleResourceCenter opens the resource center if closed, else closes it.
func (f *Facade) ToggleResourceCenter() { f.fire(MethodToggleResourceCenter) }

// EndAll ends every running flow and checklist.
func (f *Facade) EndAll() *async.Future[struct{}] { return f.call(MethodEndAll) }

// EndAllFlows ends every running flow.
func (f *Facade) EndAllFlows() *async.Future[struct{}] { return f.call(MethodEndAllFlows) }

// EndChecklist ends the running checklist.
func (f *Facade) EndChecklist() *async.Future[struct{}] { return f.call(MethodEndChecklist) }

// Group associates the current user with a group.
func (f *Facade) Group(groupID string, attrs Attributes, opts *GroupOptions) *async.Future[struct{}] {
	return f.call(MethodGroup, groupID, attrs, opts)
}

// Identify sets the current user.
func (f *Facade) Identify(userID string, attrs Attributes, opts *IdentifyOptions) *async.Future[struct{}] {
	return f.call(MethodIdentify, userID, attrs, opts)
}

// IdentifyAnonymous identifies a visitor without a user ID.
func (f *Facade) IdentifyAnonymous(attrs Attributes, opts *IdentifyOptions) *async.Future[struct{}] {
	return f.call(MethodIdentifyAnonymous, attrs, opts)
}

// Start starts a flow or checklist by content ID.
func (f *Facade) Start(contentID string, opts *StartOptions) *async.Future[struct{}] {
	return f.call(MethodStart, contentID, opts)
}

// StartFlow starts a flow by content ID.
func (f *Facade) StartFlow(contentID string, opts *StartOptions) *async.Future[struct{}] {
	return f.call(MethodStartFlow, contentID, opts)
}

// StartWalk starts a flow in walk-through mode.
func (f *Facade) StartWalk(contentID string, opts *StartOptions) *async.Future[struct{}] {
	return f.call(MethodStartWalk, contentID, opts)
}

// Track records an event for the current user.
func (f *Facade) Track(event string, attrs Attributes, opts *TrackOptions) *async.Future[struct{}] {
	return f.call(MethodTrack, event, attrs, opts)
}

// UpdateGroup updates attributes of the current group.
func (f *Facade) UpdateGroup(attrs Attributes, opts *GroupOptions) *async.Future[struct{}] {
	return f.call(MethodUpdateGroup, attrs, opts)
}

// UpdateUser updates attributes of the current user.
func (f *Facade) UpdateUser(attrs Attributes, opts *IdentifyOptions) *async.Future[struct{}] {
	return f.call(MethodUpdateUser, attrs, opts)
}

// GetResourceCenterState returns nil until the real client is attached.
func (f *Facade) GetResourceCenterState() *ResourceCenterState {
	return queryAs[*ResourceCenterState](f, MethodGetResourceCenterState)
}

// IsIdentified returns false until the real client is attached.
func (f *Facade) IsIdentified() bool {
	return queryAs[bool](f, MethodIsIdentified)
}
