// Package websocket - websocket/globals.go
package websocket

import "sync"

// connections tracks all connected admin dashboards (for broadcast usage)
var connections = make(map[*Connection]bool)

// connectionsMutex guards the connections map
var connectionsMutex sync.Mutex

// broadcast is a channel for sending messages to all connected dashboards
var broadcast = make(chan []byte, 64)

// registerConnection adds a dashboard connection to the global set.
func registerConnection(c *Connection) {
	connectionsMutex.Lock()
	connections[c] = true
	count := len(connections)
	connectionsMutex.Unlock()

	go PublishDashboardConnections(count)
}

// unregisterConnection removes a dashboard connection from the global set.
func unregisterConnection(c *Connection) {
	connectionsMutex.Lock()
	if _, ok := connections[c]; ok {
		delete(connections, c)
		close(c.send)
	}
	count := len(connections)
	connectionsMutex.Unlock()

	go PublishDashboardConnections(count)
}
