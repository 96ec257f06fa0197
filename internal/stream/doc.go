// Package stream provides the WebSocket client for live dashboard data.
//
// One Client owns one logical connection: connect/disconnect are
// imperative, message fan-out goes to listeners in registration order,
// and the connection summary is published through Status. There is no
// automatic reconnection; callers that want it call Connect again.
package stream
