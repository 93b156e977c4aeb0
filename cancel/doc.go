// Copyright 2021 The pipex Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package cancel provides Token, a cooperative cancellation signal which
may be attached to a request configuration.

Create a token and its cancel function with WithCancel:

	token, cancelFn := cancel.WithCancel()
	cfg := &request.Config{URL: "/slow", CancelToken: token}
	go func() {
		time.Sleep(time.Second)
		cancelFn("user pressed stop")
	}()
	_, err := client.Do(ctx, cfg)
	if cancel.IsCancel(err) {
		...
	}

The request pipeline checks the token before it calls the transport
adapter, and again after the adapter returns. If cancellation was
requested at either point, the request fails with a *Cancel error, even
if the adapter produced a response. Adapters may additionally watch the
token's Done channel to abort in-flight I/O.
*/
package cancel
