// Package reveal drives scroll-triggered presentation state.
//
// A page mount creates one Controller over a Source (usually a Viewport)
// and acquires handles from it: RevealHandle for show-on-scroll regions,
// ParallaxHandle for scroll-proportional translation and CountUpHandle for
// numbers that climb to a target once seen. Handles learn about the
// viewport through subscriptions, never by polling, and the page releases
// all of them with Controller.Close when it unmounts.
//
// Region lifecycle:
//
//	Unobserved -> Observing -> Triggered [-> Observing if repeating]
//
// and Released from any state.
package reveal
