// Package marvel provides an HTTP client for the Marvel Comics character API.
//
// # Overview
//
// This package is the remote catalog collaborator of cerebro. It exposes two
// read-only lookups through the Catalog interface:
//
//   - SearchCharacters: /v1/public/characters with nameStartsWith, limit,
//     offset and orderBy
//   - GetCharacter: /v1/public/characters/{id}
//
// The browsing core (search, gallery, navigation) only ever depends on
// Catalog, so tests substitute an in-memory fake.
//
// # Architecture
//
//   - client.go: HTTP client, request signing, pacing and request ids
//   - errors.go: TransientFetchError and ErrNotFound
//   - types.go: data structures mirroring the API schema
//
// # Client Usage
//
//	client, err := marvel.NewClient(marvel.Options{
//		PublicKey:  cfg.PublicKey,
//		PrivateKey: cfg.PrivateKey,
//	})
//	if err != nil {
//		return err
//	}
//
//	chars, err := client.SearchCharacters(ctx, marvel.Query{
//		NameStartsWith: "spi",
//		Limit:          10,
//	})
//
// # Authentication
//
// When both keys are configured every request carries apikey, ts and
// hash=md5(ts+privateKey+publicKey). With only a public key the client sends
// apikey alone, which the API accepts for allow-listed referrers.
//
// # Error Handling
//
// Every failure (transport, HTTP status >= 400, decode) is returned as a
// *TransientFetchError. GetCharacter reports "no such character" as a nil
// record and nil error; the 404 it receives in that case is not counted as an
// outage by the Observer.
//
// # Pacing
//
// Requests pass through a token bucket (golang.org/x/time/rate) so rapid
// navigation cannot burn through the daily call quota. Waiting honors ctx.
//
// # Observability
//
// Each request gets an X-Request-ID (UUID) that is sent to the server and
// logged through the configured slog.Logger. An optional Observer receives the
// outcome of every request; cerebro wires state.Store here to drive the API
// health indicator.
package marvel
