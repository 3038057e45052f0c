// Package outline draws the designer's workspaces as indented node trees on
// a tcell screen.
//
// The screen is split into one column per workspace. Row 0 holds the
// workspace titles, each following row one node in pre-order, and the last
// row a status line. The Renderer doubles as the cursor's HitTester and as
// every workspace's Viewport, so pointer gestures resolve against exactly
// what was last drawn.
package outline
