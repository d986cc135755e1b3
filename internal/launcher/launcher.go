// Package launcher abstracts the OS-level "open this URL" side effect so
// the delivery loop can run against a fake in tests.
package launcher

import "github.com/pkg/browser"

type Launcher interface {
	Open(url string) error
}

// Browser opens URLs in the user's default web browser.
type Browser struct{}

func NewBrowser() *Browser { return &Browser{} }

func (*Browser) Open(url string) error {
	return browser.OpenURL(url)
}
