// Package key defines the key event model shared by every input path into
// the simulator. Live keystrokes, recorded macros, and scripted test input
// all reduce to the same Event values, which is what guarantees macro
// playback behaves identically to manual typing.
package key
