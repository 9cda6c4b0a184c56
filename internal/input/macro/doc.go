// Package macro records and replays key sequences.
//
// Recording captures literal key events into registers a-z; playback
// re-feeds them one at a time through the caller's input path, exactly
// as if typed. Playback is synchronous and non-reentrant: a macro that
// plays another macro is rejected, and @@ repeats the last played
// register.
package macro
