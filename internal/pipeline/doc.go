// Package pipeline provides the site build orchestration for a song
// catalog.
//
// # Manager
//
// The Manager coordinates the entire build:
//
//  1. Import the catalog CSV and merge the song info document
//  2. Write TINY thumbnails of sheet scans
//  3. Attach sheets and recordings found in the resource library
//  4. Read BPM, key, artist and album from recording tags
//  5. Write catalog data back into recording tags (optional)
//  6. Create missing page stubs
//  7. Export the song info document
//  8. Generate the setlist playlist
//
// # Basic Usage
//
//	manager, err := pipeline.NewManager(settings, logger, func(event pipeline.ProgressEvent) {
//	    fmt.Println(event.Message)
//	})
//
//	if err := manager.Initialize(ctx); err != nil {
//	    log.Fatal(err)
//	}
//
//	if err := manager.Run(ctx, pipeline.AllSteps()); err != nil {
//	    log.Fatal(err)
//	}
//
// # Progress Tracking
//
// Progress is reported via a callback function that receives ProgressEvent:
//
//	type ProgressEvent struct {
//	    Message string
//	    Level   ProgressLevel // Info, Verbose, Warning, Error, Success
//	}
//
// GetProgress reports finished and total steps and may be polled from
// another goroutine while Run executes.
//
// # Failures
//
// Problems with a single song or file are reported as warnings and the
// build goes on. A step that cannot run at all, such as a missing library
// root, stops Run with an error.
package pipeline
