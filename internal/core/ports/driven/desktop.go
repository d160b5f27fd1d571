package driven

// Clipboard writes text to the system clipboard.
type Clipboard interface {
	WriteText(text string) error
}

// URLOpener opens a URL in the user's default browser.
type URLOpener interface {
	Open(url string) error
}
