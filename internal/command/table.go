// Package command maps user-facing verbs onto daemon requests.
package command

import "strings"

// Param is one positional parameter of a verb.
type Param struct {
	Name     string
	Optional bool
}

// Spec describes how a verb is sent to the daemon.
type Spec struct {
	// Action is the daemon-side operation name.
	Action string
	Params []Param
	// Flags lists the verb-specific flag tokens shown in help.
	Flags []string
	Help  string
}

// params parses declarations like "selector" and "direction?" (optional).
func params(decls ...string) []Param {
	out := make([]Param, 0, len(decls))
	for _, d := range decls {
		out = append(out, Param{
			Name:     strings.TrimSuffix(d, "?"),
			Optional: strings.HasSuffix(d, "?"),
		})
	}
	return out
}

// Table is keyed by verb.
var Table = map[string]Spec{
	// Navigation
	"launch":   {Action: "launch", Flags: []string{"--headed"}, Help: "Launch browser"},
	"open":     {Action: "navigate", Params: params("url"), Help: "Navigate to URL"},
	"goto":     {Action: "navigate", Params: params("url"), Help: "Navigate to URL (alias)"},
	"navigate": {Action: "navigate", Params: params("url"), Help: "Navigate to URL (alias)"},
	"back":     {Action: "back", Help: "Go back in history"},
	"forward":  {Action: "forward", Help: "Go forward in history"},
	"reload":   {Action: "reload", Help: "Reload current page"},
	"url":      {Action: "url", Help: "Get current URL"},
	"title":    {Action: "title", Help: "Get page title"},
	"close":    {Action: "close", Help: "Close browser"},

	// Mouse
	"click":       {Action: "click", Params: params("selector"), Help: "Click element"},
	"dblclick":    {Action: "dblclick", Params: params("selector"), Help: "Double-click element"},
	"tripleclick": {Action: "tripleclick", Params: params("selector"), Help: "Triple-click element"},
	"hover":       {Action: "hover", Params: params("selector"), Help: "Hover over element"},
	"drag":        {Action: "drag", Params: params("source", "target"), Help: "Drag source to target"},
	"scroll":      {Action: "scroll", Params: params("selector?", "direction?"), Help: "Scroll page/element"},
	"scrollto":    {Action: "scrollto", Params: params("selector"), Help: "Scroll element into view"},

	// Keyboard
	"fill":  {Action: "fill", Params: params("selector", "value"), Help: "Fill input (clears first)"},
	"type":  {Action: "type", Params: params("selector", "text"), Help: "Type text (no clear)"},
	"press": {Action: "press", Params: params("key"), Help: "Press keyboard key"},
	"clear": {Action: "clear", Params: params("selector"), Help: "Clear input field"},
	"focus": {Action: "focus", Params: params("selector"), Help: "Focus element"},
	"blur":  {Action: "blur", Params: params("selector"), Help: "Blur (unfocus) element"},

	// Forms
	"check":   {Action: "check", Params: params("selector"), Help: "Check checkbox"},
	"uncheck": {Action: "uncheck", Params: params("selector"), Help: "Uncheck checkbox"},
	"select":  {Action: "selectOption", Params: params("selector", "value"), Help: "Select dropdown option"},
	"upload":  {Action: "setInputFiles", Params: params("selector", "file"), Help: "Upload file to input"},

	// Inspection
	"get":         {Action: "get", Params: params("what", "selector?"), Help: "Get property (text/attr/html)"},
	"gettext":     {Action: "textContent", Params: params("selector"), Help: "Get element text content"},
	"getattr":     {Action: "getAttribute", Params: params("selector", "attribute"), Help: "Get attribute value"},
	"innerhtml":   {Action: "innerHTML", Params: params("selector"), Help: "Get element inner HTML"},
	"outerhtml":   {Action: "outerHTML", Params: params("selector"), Help: "Get element outer HTML"},
	"inputvalue":  {Action: "inputValue", Params: params("selector"), Help: "Get input value"},
	"isvisible":   {Action: "isVisible", Params: params("selector"), Help: "Check if element visible"},
	"isenabled":   {Action: "isEnabled", Params: params("selector"), Help: "Check if element enabled"},
	"ischecked":   {Action: "isChecked", Params: params("selector"), Help: "Check if checkbox checked"},
	"ishidden":    {Action: "isHidden", Params: params("selector"), Help: "Check if element hidden"},
	"count":       {Action: "count", Params: params("selector"), Help: "Count matching elements"},
	"boundingbox": {Action: "boundingBox", Params: params("selector"), Help: "Get element position/size"},

	// Screenshots
	"screenshot": {Action: "screenshot", Params: params("path?"), Flags: []string{"--full", "-f"}, Help: "Take screenshot"},
	"snapshot":   {Action: "snapshot", Flags: []string{"-i", "-c"}, Help: "Get DOM tree with refs"},
	"pdf":        {Action: "pdf", Params: params("path"), Help: "Export page to PDF"},

	// Debugging
	"console":  {Action: "console", Flags: []string{"--clear"}, Help: "Get console log messages"},
	"errors":   {Action: "errors", Flags: []string{"--clear"}, Help: "Get JavaScript errors"},
	"requests": {Action: "requests", Flags: []string{"--clear", "--filter=<pattern>"}, Help: "Get network requests"},
	"content":  {Action: "content", Params: params("selector?"), Help: "Get page/element HTML"},
	"eval":     {Action: "evaluate", Params: params("script"), Help: "Execute JavaScript"},
	"evaluate": {Action: "evaluate", Params: params("script"), Help: "Execute JavaScript (alias)"},

	// Storage
	"storage-get":    {Action: "storageGet", Params: params("type", "key?"), Help: "Get localStorage/sessionStorage"},
	"storage-set":    {Action: "storageSet", Params: params("type", "key", "value"), Help: "Set storage value"},
	"storage-remove": {Action: "storageRemove", Params: params("type", "key"), Help: "Remove storage key"},
	"storage-clear":  {Action: "storageClear", Params: params("type"), Help: "Clear storage (local/session)"},
	"cookies-get":    {Action: "cookiesGet", Help: "Get all cookies"},
	"cookies-set":    {Action: "cookiesSet", Params: params("name", "value", "options?"), Help: "Set cookie"},
	"cookies-clear":  {Action: "cookiesClear", Help: "Clear all cookies"},

	// Network
	"route":   {Action: "route", Params: params("url", "response?"), Help: "Mock network request"},
	"unroute": {Action: "unroute", Params: params("url?"), Help: "Remove network mock"},
	"offline": {Action: "offline", Params: params("enabled"), Help: "Toggle offline mode (true/false)"},
	"headers": {Action: "setExtraHTTPHeaders", Params: params("json"), Help: "Set extra HTTP headers"},

	// Waiting
	"wait":         {Action: "waitForSelector", Params: params("selector"), Flags: []string{"--visible", "--hidden", "--attached", "--detached"}, Help: "Wait for element"},
	"waiturl":      {Action: "waitForURL", Params: params("url"), Help: "Wait for URL pattern"},
	"waitload":     {Action: "waitForLoadState", Params: params("state?"), Help: "Wait for load state"},
	"waitfunction": {Action: "waitForFunction", Params: params("script"), Help: "Wait for JS condition"},
	"waittimeout":  {Action: "waitForTimeout", Params: params("ms"), Help: "Wait for milliseconds"},
	"waitresponse": {Action: "waitForResponse", Params: params("url"), Help: "Wait for network response"},
	"waitrequest":  {Action: "waitForRequest", Params: params("url"), Help: "Wait for network request"},

	// Frames
	"frame":     {Action: "frame", Params: params("selector"), Help: "Switch to iframe by selector"},
	"frameurl":  {Action: "frameByUrl", Params: params("url"), Help: "Switch to iframe by URL"},
	"framename": {Action: "frameByName", Params: params("name"), Help: "Switch to iframe by name"},
	"mainframe": {Action: "mainFrame", Help: "Switch back to main frame"},
	"frames":    {Action: "frames", Help: "List all frames"},

	// Tabs
	"tab-new":    {Action: "newPage", Params: params("url?"), Help: "Open new tab"},
	"tab-list":   {Action: "pages", Help: "List all tabs/pages"},
	"tab-switch": {Action: "switchPage", Params: params("index"), Help: "Switch to tab by index"},
	"tab-close":  {Action: "closePage", Params: params("index?"), Help: "Close tab by index"},

	// Recording
	"trace-start": {Action: "traceStart", Help: "Start performance trace"},
	"trace-stop":  {Action: "traceStop", Params: params("path"), Help: "Stop trace and save to file"},
	"har-start":   {Action: "harStart", Help: "Start HAR recording"},
	"har-stop":    {Action: "harStop", Params: params("path"), Help: "Stop HAR and save to file"},
	"video-start": {Action: "videoStart", Help: "Start video recording"},
	"video-stop":  {Action: "videoStop", Params: params("path"), Help: "Stop video and save to file"},

	// Emulation
	"viewport":    {Action: "setViewportSize", Params: params("width", "height"), Help: "Set viewport size"},
	"device":      {Action: "emulateDevice", Params: params("name"), Help: "Emulate device (iPhone, Pixel, etc)"},
	"geolocation": {Action: "setGeolocation", Params: params("latitude", "longitude"), Help: "Set geolocation"},
	"timezone":    {Action: "setTimezone", Params: params("timezone"), Help: "Set timezone (e.g., America/New_York)"},
	"locale":      {Action: "setLocale", Params: params("locale"), Help: "Set locale (e.g., en-US)"},
	"useragent":   {Action: "setUserAgent", Params: params("ua"), Help: "Set user agent string"},
	"colorscheme": {Action: "setColorScheme", Params: params("scheme"), Help: "Set color scheme (light/dark)"},

	// Older spelling, still accepted.
	"colorsscheme": {Action: "setColorScheme", Params: params("scheme"), Help: "Set color scheme (alias of colorscheme)"},

	// Dialogs
	"dialog":         {Action: "dialog", Params: params("action", "text?"), Help: "Handle dialog (accept/dismiss)"},
	"dialog-accept":  {Action: "dialogAccept", Params: params("text?"), Help: "Accept dialog with optional text"},
	"dialog-dismiss": {Action: "dialogDismiss", Help: "Dismiss dialog"},

	// Auth
	"auth-basic":       {Action: "setHTTPCredentials", Params: params("username", "password"), Help: "Set HTTP basic auth"},
	"permission":       {Action: "grantPermissions", Params: params("permission"), Help: "Grant browser permission"},
	"permission-clear": {Action: "clearPermissions", Help: "Clear all permissions"},

	// Downloads
	"download-wait": {Action: "waitForDownload", Help: "Wait for download to start"},
	"download-path": {Action: "setDownloadPath", Params: params("path"), Help: "Set download directory"},

	// Accessibility
	"a11y-snapshot": {Action: "accessibilitySnapshot", Help: "Get accessibility tree"},
	"a11y-tree":     {Action: "accessibilityTree", Params: params("selector?"), Help: "Get accessibility tree for element"},

	// Contexts
	"context-new":   {Action: "newContext", Help: "Create new browser context"},
	"context-close": {Action: "closeContext", Help: "Close current context"},
	"context-list":  {Action: "contexts", Help: "List all contexts"},

	// State
	"state-save": {Action: "storageState", Params: params("path"), Help: "Save browser state to file"},
	"state-load": {Action: "loadStorageState", Params: params("path"), Help: "Load browser state from file"},

	// Utility
	"expose":    {Action: "exposeFunction", Params: params("name", "script"), Help: "Expose function to page"},
	"addscript": {Action: "addInitScript", Params: params("script"), Help: "Add script to run on navigation"},
	"highlight": {Action: "highlight", Params: params("selector"), Help: "Highlight element on page"},
}

// Category groups verbs for help output.
type Category struct {
	Name  string
	Verbs []string
}

// Categories lists every verb in Table exactly once, in help order.
var Categories = []Category{
	{"Navigation", []string{"launch", "open", "goto", "navigate", "back", "forward", "reload", "url", "title", "close"}},
	{"Interaction", []string{"click", "dblclick", "tripleclick", "hover", "drag", "scroll", "scrollto"}},
	{"Text Input", []string{"fill", "type", "press", "clear", "focus", "blur"}},
	{"Forms", []string{"check", "uncheck", "select", "upload"}},
	{"Inspection", []string{"get", "gettext", "getattr", "innerhtml", "outerhtml", "inputvalue", "isvisible", "isenabled", "ischecked", "ishidden", "count", "boundingbox"}},
	{"Screenshots", []string{"screenshot", "snapshot", "pdf"}},
	{"Debugging", []string{"console", "errors", "requests", "content", "eval", "evaluate"}},
	{"Storage", []string{"storage-get", "storage-set", "storage-remove", "storage-clear", "cookies-get", "cookies-set", "cookies-clear"}},
	{"Network", []string{"route", "unroute", "offline", "headers"}},
	{"Waiting", []string{"wait", "waiturl", "waitload", "waitfunction", "waittimeout", "waitresponse", "waitrequest"}},
	{"Frames", []string{"frame", "frameurl", "framename", "mainframe", "frames"}},
	{"Tabs", []string{"tab-new", "tab-list", "tab-switch", "tab-close"}},
	{"Recording", []string{"trace-start", "trace-stop", "har-start", "har-stop", "video-start", "video-stop"}},
	{"Emulation", []string{"viewport", "device", "geolocation", "timezone", "locale", "useragent", "colorscheme", "colorsscheme"}},
	{"Dialogs", []string{"dialog", "dialog-accept", "dialog-dismiss"}},
	{"Auth", []string{"auth-basic", "permission", "permission-clear"}},
	{"Downloads", []string{"download-wait", "download-path"}},
	{"Accessibility", []string{"a11y-snapshot", "a11y-tree"}},
	{"Contexts", []string{"context-new", "context-close", "context-list"}},
	{"State", []string{"state-save", "state-load"}},
	{"Utility", []string{"expose", "addscript", "highlight"}},
}

// CommonVerbs are shown in the short help.
var CommonVerbs = []string{"open", "click", "fill", "snapshot", "screenshot", "console", "errors", "eval", "close"}

// Lookup returns the spec for verb.
func Lookup(verb string) (Spec, bool) {
	spec, ok := Table[verb]
	return spec, ok
}

// RemoteAction returns the daemon action verb maps to; unknown verbs pass through.
func RemoteAction(verb string) string {
	if spec, ok := Table[verb]; ok {
		return spec.Action
	}
	return verb
}

// Usage renders params as "<required> [optional]".
func (s Spec) Usage() string {
	parts := make([]string, 0, len(s.Params))
	for _, p := range s.Params {
		if p.Optional {
			parts = append(parts, "["+p.Name+"]")
		} else {
			parts = append(parts, "<"+p.Name+">")
		}
	}
	return strings.Join(parts, " ")
}
