// Package browser provides web browser automation through Playwright.
//
// The package gives automation agents the tools to drive a real
// browser: start a session, navigate, extract content, click, fill
// forms, wait for elements, and search page text. Sessions persist
// across agent loop iterations so multi-step tasks operate on a single
// live page.
//
// # Architecture
//
// The package is built around three concepts:
//
//  1. Session: a Playwright browser instance with its context and page
//  2. SessionManager: owns the driver and the registry of sessions
//  3. Toolset: the agent-facing tools built on a shared manager
//
// Most automation runs use a single session named "main"; tools default
// to it when the session argument is omitted.
//
// # Session Lifecycle
//
//  1. Create: browser_start_session launches a browser
//  2. Use: navigation, interaction, and extraction tools operate on it
//  3. Close: browser_close_session releases it early if needed
//  4. Cleanup: the flow closes all sessions when a run ends, and idle
//     sessions are reaped after a timeout
//
// # Example Usage
//
//	manager := browser.NewSessionManager()
//	if err := manager.Initialize(); err != nil {
//	    return err
//	}
//	session, err := manager.StartSession("main", browser.SessionOptions{
//	    Headless: true,
//	})
//
//	err = session.Navigate("https://example.com", browser.NavigateOptions{
//	    WaitUntil: "load",
//	})
//	content, err := session.ExtractContent(browser.ExtractOptions{
//	    Format:    browser.FormatMarkdown,
//	    MaxLength: 10000,
//	})
//
//	err = manager.CloseAll()
package browser
