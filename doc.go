// Package auth issues and verifies session tokens for HTTP services.
//
// A Manager is bound to one Config (secret, token lifetime, header name) and
// exposes two operations:
//   - GenerateJWT signs a Session after resolving its user id. Sessions that
//     carry only the standard sub claim get it copied into userId.
//   - LoadSession reads "Authorization: Bearer <token>" (or the configured
//     header, or a custom TokenExtractor), verifies the token and attaches
//     the decoded Session to the request.
//
// Register installs a go-router middleware that exposes both operations on
// every request through FromRouter, and publishes the manager as the process
// default. It works with any go-router adapter (fiber, httprouter).
//
// Failures are go-errors values whose text code names the failure and whose
// code is the HTTP status: session-is-empty, session-has-no-userId,
// credentials-bad-schema, credentials-required and invalid-token.
// ErrorHandler renders them as JSON.
package auth
