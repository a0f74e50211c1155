// Package tasksdk is a Go client for the tasks service.
//
// Anonymous operations hang off Client; logging in returns a Session that
// carries the session token on every call:
//
//	c := tasksdk.NewClient("http://localhost:10000")
//	if _, err := c.Register(ctx, tasksdk.RegisterRequest{
//		Username:        "alice",
//		Email:           "a@x.com",
//		Password:        "secret1",
//		ConfirmPassword: "secret1",
//	}); err != nil {
//		return err
//	}
//
//	s, err := c.Login(ctx, "a@x.com", "secret1")
//	if err != nil {
//		return err
//	}
//	defer s.Logout(ctx)
//
//	task, err := s.CreateTask(ctx, "Buy milk", "")
//
// Failed calls return *APIError, which matches the Err* values under
// errors.Is by error code.
package tasksdk
