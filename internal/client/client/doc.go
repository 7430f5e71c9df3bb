// Package client is the API client for the composition service.
//
// # Overview
//
// Every call goes through one pipeline:
//
//	Client operation -> Transport.Send -> Normalize -> (failure) *Error
//	                                               -> (success) session.Store merge
//
//  1. Transport is the narrow HTTP capability the client needs. HTTPTransport
//     is the default implementation; it keeps a cookie jar so session cookies
//     set by the server are sent back on later calls.
//  2. Normalize turns any response body into a Result. Bodies that are not
//     JSON (an error page served with status 200, say) become a synthetic
//     failure with code 500 and the raw text as the message.
//  3. Failed Results are returned as *Error, with the server's terse code
//     translated through ErrorTable.
//  4. Successful identity-affecting calls (GetMe, Login, Signup,
//     UpdateMyInfo, Logout) update the session.Store held by the Client.
//
// # Error Handling
//
// Callers branch on err != nil. Application and malformed-payload failures
// are *Error values (use errors.As); transport errors are returned as the
// Transport produced them. ErrNotConnected matches any failure carrying the
// "user:not-connected" code via errors.Is.
//
// # Concurrency
//
// A Client may be shared between goroutines. There is no ordering between
// concurrent requests: the last merge to run wins, field by field.
package client
