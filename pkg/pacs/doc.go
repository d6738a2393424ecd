// Package pacs is the typed client for the medical imaging platform's
// administration API.
//
// Authenticator implements the login flow on top of the session store:
//
//	auth := pacs.NewAuthenticator(api, store)
//	snap, err := auth.Login(ctx, "admin@example.com", password)
//	if f, ok := apierror.AsFailure(err); ok {
//		fmt.Println(f.UserMessage())
//	}
//
// Client wraps the user, organization, study, DICOM node and engine
// endpoints. Its methods return the decoded value or the call's
// *apierror.Failure.
package pacs
