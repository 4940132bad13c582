/*
Package authsdk provides a client SDK for the gatekeep authentication service.

Create an SDKClient for public endpoints and to start a session:

	client := authsdk.NewSDKClient("https://auth.example.com")

	health, err := client.GetLiveness(ctx)
	account, err := client.Register(ctx, "alice@example.com", "correct horse")
	session, err := client.AuthenticateWithPassword(ctx, "alice@example.com", "correct horse")

A Session carries the token pair and refreshes the access token shortly
before it expires. Refresh tokens are single use, so a Session must not be
shared between processes:

	me, err := session.Me(ctx)
	err = session.ChangePassword(ctx, "correct horse", "battery staple")
	err = session.Revoke(ctx)

Non-2xx responses are returned as *APIError:

	if authsdk.IsUnauthorized(err) {
		// wrong password, unknown account or a burnt refresh token
	}
*/
package authsdk
