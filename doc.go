// Package monetdbd provides a native Go client for the MonetDB database
// server daemon (monetdbd, historically "merovingian") control protocol,
// without shelling out to the monetdb command line tool.
//
// The core functionality centers around the Client type, which manages
// databases through the daemon's line-oriented control language:
//
//	// transport is any monetdbd.Transport, e.g. a MAPI dialer
//	client, err := monetdbd.New(ctx, transport, 50000, monetdbd.WithPassphrase("secret"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Create and start a database
//	err = client.Create(ctx, "mydb")
//	err = client.Start(ctx, "mydb")
//
//	// Get status
//	status, err := client.Status(ctx, "mydb")
//	fmt.Printf("Database state: %v, started %d times\n", status.State, status.StartCounter)
//
// Every command opens a fresh control session, sends a single request line,
// reads the reply, and disconnects. No connection is held between calls, so
// a Client is safe for concurrent use without locking.
//
// # Manager for Bulk Operations
//
// The Manager type is provided as a convenience for applications that need
// to operate on multiple databases concurrently. It's particularly useful for:
//
//   - Fleet start/stop sequences
//   - Maintenance windows (lock/release across many databases)
//   - Health monitoring dashboards
//
// If your application only manages single databases, you may not need the
// Manager. It's designed to be optional - the Client type provides all core
// functionality.
//
//	manager := monetdbd.NewManager(client,
//	    monetdbd.WithConcurrency(5),
//	    monetdbd.WithTimeout(10 * time.Second),
//	)
//
//	// Start multiple databases concurrently
//	err = manager.Start(ctx, "web", "reports", "staging")
//
// # Design Philosophy
//
// This library prioritizes:
//
//   - Zero external process spawning (no exec of monetdb/monetdbd)
//   - One independent control session per operation, released on every path
//   - Typed status decoding for both sabdb protocol versions (1 and 2)
//   - Type safety (no string-based operation codes)
//   - A pluggable transport boundary so the MAPI handshake stays out of
//     the control layer
//
// Authentication and wire framing belong to the Transport implementation;
// this package treats the transport purely as a request/reply channel.
package monetdbd
