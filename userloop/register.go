package userloop

import "github.com/rvsnack/rvterm/rvapi"

// register walks a new user through account creation. Every prompt
// that times out abandons the flow and drops back to the username
// prompt.
func (c *Controller) register(username string) {
	c.screen.Line("")
	c.screen.Printf("user %s does not exist, create a new user? [yN]\r\n", username)
	switch c.confirm() {
	case confirmNo:
		c.screen.Line("Aborting!")
		c.pause()
		return
	case confirmTimeout:
		c.timedOut()
		return
	}

	c.screen.Line("")
	c.screen.Line("I am a member of TKO-äly ry and I understand that this service is intended")
	c.screen.Line("ONLY for the use of the members of TKO-äly ry. [yN]")
	switch c.confirm() {
	case confirmNo:
		c.screen.Line("Aborting!")
		c.pause()
		return
	case confirmTimeout:
		c.timedOut()
		return
	}

	c.screen.Printf("\r\ncreating a new user: %s\r\nenter password:", username)
	password1, ok := c.readPassword(c.cfg.LongTimeout)
	if !ok {
		c.timedOut()
		return
	}

	c.screen.Print("\r\nenter password again:")
	password2, ok := c.readPassword(c.cfg.LongTimeout)
	if !ok {
		c.timedOut()
		return
	}

	if password1 != password2 {
		c.screen.Line("Given passwords do not match, aborting.")
		c.pause()
		return
	}

	c.screen.Print("\r\nEnter your FULL name:")
	fullName, ok := c.readLine(c.cfg.LongTimeout)
	if !ok {
		c.timedOut()
		return
	}

	c.screen.Print("\r\nEnter your email address:")
	email, ok := c.readLine(c.cfg.LongTimeout)
	if !ok {
		c.timedOut()
		return
	}
	c.screen.Line("")

	if err := c.backend.Register(username, password1, fullName, email); err != nil {
		if apiErr, isAPI := rvapi.IsAPIError(err); isAPI {
			c.screen.Printf("registration failed: %s\r\n", apiErr.Message)
			c.confirmEnter()
			return
		}
		c.fatal(err)
	}
	c.screen.Printf("%s registered successfully\r\n", username)
	c.confirmEnter()
}
