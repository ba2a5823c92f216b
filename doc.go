// Package keyward provides a Go client for remote grid table services:
// spreadsheet-like tables addressed by name, with rows identified by
// service-assigned numeric identifiers.
//
// The library is a thin convenience layer: every operation is a single
// delegation to the table gateway, with light type coercion, client-side
// row matching for conditional deletes, and multi-table merge helpers. The
// gateway owns storage, row identifiers, and concurrency control.
//
// # Quick Start
//
// Create a client connected to a REST gateway:
//
//	client, err := keyward.NewClient(ctx,
//	    keyward.WithRESTGateway("https://grid.example.com"),
//	    keyward.WithToken(token),
//	)
//
// Create a table and add rows:
//
//	client.CreateTable(ctx, "People", map[string]frame.ColumnType{
//	    "Name": frame.TypeText,
//	    "Age":  frame.TypeNumeric,
//	})
//	ids := client.AddRecord(ctx, "People", gateway.Record{"Name": "Ada", "Age": 36})
//
// Fetch a table as a frame:
//
//	f := client.GetTable(ctx, "People")
//
// Merge tables:
//
//	ok := client.MergeTables(ctx, []string{"Q1", "Q2"}, "Year", true)
//
// # Failure Policy
//
// No operation returns an error or panics. Failures are logged through the
// configured zap logger and reported as the benign zero value of each
// operation's return shape: false, nil identifier list, empty frame, or
// empty string. There is no retry and no distinction between failure
// kinds; callers needing those policies should wrap the gateway.
package keyward
