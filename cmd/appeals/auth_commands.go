package main

import (
	"github.com/jrsteele09/appeals-client/internal/errors"
)

type versionCommand struct {
	app *application
}

func (c *versionCommand) Execute(_ []string) error {
	displayAppname(c.app.cfg.GetAppName())
	c.app.printf("environment: %s\n", c.app.cfg.GetEnv())
	return nil
}

type loginCommand struct {
	Email    string `short:"e" long:"email" required:"true" description:"account email"`
	Password string `short:"p" long:"password" env:"APPEALS_PASSWORD" description:"account password"`

	app *application
}

func (c *loginCommand) Execute(_ []string) error {
	client, err := c.app.Client()
	if err != nil {
		return err
	}
	if _, err := client.Auth.Login(c.app.ctx, c.Email, c.Password); err != nil {
		return err
	}
	user, err := client.Auth.User(c.app.ctx)
	if err != nil {
		return err
	}
	return c.app.print(user)
}

type logoutCommand struct {
	app *application
}

func (c *logoutCommand) Execute(_ []string) error {
	client, err := c.app.Client()
	if err != nil {
		return err
	}
	if err := client.Auth.Logout(c.app.ctx); err != nil {
		return err
	}
	c.app.printf("logged out\n")
	return nil
}

type whoamiCommand struct {
	Local bool `long:"local" description:"show the stored identity without calling the API"`

	app *application
}

func (c *whoamiCommand) Execute(_ []string) error {
	client, err := c.app.Client()
	if err != nil {
		return err
	}
	if c.Local {
		user, err := client.Auth.User(c.app.ctx)
		if errors.Is(err, errors.ErrSessionNotFound) || (err == nil && !client.Auth.IsAuthenticated(c.app.ctx)) {
			return errors.Wrapf(errors.ErrLoginRequired, "not logged in")
		}
		if err != nil {
			return err
		}
		return c.app.print(user)
	}
	profile, err := client.Auth.CurrentUser(c.app.ctx)
	if err != nil {
		return err
	}
	return c.app.print(profile)
}

type refreshCommand struct {
	app *application
}

func (c *refreshCommand) Execute(_ []string) error {
	client, err := c.app.Client()
	if err != nil {
		return err
	}
	if _, err := client.Auth.Refresh(c.app.ctx); err != nil {
		return err
	}
	user, err := client.Auth.User(c.app.ctx)
	if err != nil {
		return err
	}
	return c.app.print(user)
}
