// Package vigil is the submission pipeline of an error-reporting client.
//
// It takes a fully-populated event record, decides whether it should be
// sent, lets user-supplied hooks inspect or suppress it, renders it into a
// transport-safe payload, and hands it to a delivery transport with a
// chosen completion mode.
//
// # Core Components
//
//   - Event: the error/message record submitted through the pipeline
//   - Client: sequences sampling, hooks, rendering, and dispatch
//   - Sanitizer: guarantees every outgoing payload value is serializable
//   - Transport: destination for rendered payloads (ingest, stderr, multi, noop)
//   - Callable: the two supported hook shapes (bare function, bound method)
//
// # Quick Start
//
// Reporting to a hosted ingest endpoint:
//
//	client, err := vigil.New(
//	    vigil.WithTransport(ingest.NewTransport(os.Getenv("VIGIL_DSN"))),
//	    vigil.WithSampleRate(0.5),
//	)
//	result := client.Send(ctx, event)
//
// For development, print events instead of sending them:
//
//	client, _ := vigil.New(vigil.WithTransport(stderr.NewTransport()))
//	defer vigil.Recover(ctx, client)
//
// # Design Principles
//
//   - A failed telemetry send never crashes the host: delivery errors are
//     returned as typed results, not raised
//   - Suppression (sampling, hooks) is ordinary control flow, decided
//     before any rendering work happens
//   - Programmer errors (malformed hooks, retired completion modes) fail
//     loudly and immediately
package vigil
