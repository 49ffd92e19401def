// Package broadcast implements the WebSocket connection registry and fan-out engine.
//
// The Backend tracks which connections subscribe to which channels and fans published
// messages out to the matching subset. A single RWMutex guards the registry; Publish
// snapshots the matching connections under the read lock and hands frames to buffered
// per-connection write pumps outside it, so a slow or dead client never blocks
// registry mutations or delivery to other clients.
package broadcast
