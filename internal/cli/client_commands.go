package cli

import (
	"context"
	"fmt"

	"time-track-invoice/internal/domain"
)

// ClientCommands handles the client subcommands
type ClientCommands struct {
	app *App
}

// NewClientCommands creates a new client command handler
func NewClientCommands(app *App) *ClientCommands {
	return &ClientCommands{app: app}
}

// Add creates a new client.
func (c *ClientCommands) Add(ctx context.Context, client domain.Client) error {
	created, err := c.app.api.CreateClient(ctx, client)
	if err != nil {
		return c.app.errorHandler.Handle("add client", err)
	}
	fmt.Fprintf(c.app.out, "Added client: %s [%s]\n", created.Name, created.ID)
	return nil
}

// List prints every client.
func (c *ClientCommands) List(ctx context.Context) error {
	clients, err := c.app.api.ListClients(ctx)
	if err != nil {
		return c.app.errorHandler.Handle("list clients", err)
	}
	if len(clients) == 0 {
		fmt.Fprintln(c.app.out, "No clients found")
		return nil
	}
	for _, client := range clients {
		fmt.Fprintf(c.app.out, "%s", client.Name)
		if client.Email != "" {
			fmt.Fprintf(c.app.out, " <%s>", client.Email)
		}
		fmt.Fprintf(c.app.out, "  [%s]\n", client.ID)
	}
	return nil
}

// Show prints a single client's full details.
func (c *ClientCommands) Show(ctx context.Context, id string) error {
	client, err := c.app.api.GetClient(ctx, id)
	if err != nil {
		return c.app.errorHandler.Handle("show client", err)
	}

	fmt.Fprintf(c.app.out, "Name:     %s\n", client.Name)
	if client.Email != "" {
		fmt.Fprintf(c.app.out, "Email:    %s\n", client.Email)
	}
	if client.Phone != "" {
		fmt.Fprintf(c.app.out, "Phone:    %s\n", client.Phone)
	}
	for _, line := range []string{client.Address, client.Town, client.County, client.Postcode} {
		if line != "" {
			fmt.Fprintf(c.app.out, "          %s\n", line)
		}
	}
	if client.Terms != "" {
		fmt.Fprintf(c.app.out, "Terms:    %s\n", client.Terms)
	}
	return nil
}

// Update replaces a client's details, keeping its identity.
func (c *ClientCommands) Update(ctx context.Context, id string, client domain.Client) error {
	if err := c.app.api.UpdateClient(ctx, id, client); err != nil {
		return c.app.errorHandler.Handle("update client", err)
	}
	fmt.Fprintf(c.app.out, "Updated client %s\n", id)
	return nil
}

// Delete removes a client and unlinks any jobs that referenced it.
func (c *ClientCommands) Delete(ctx context.Context, id string) error {
	if err := c.app.api.DeleteClient(ctx, id); err != nil {
		return c.app.errorHandler.Handle("delete client", err)
	}
	fmt.Fprintf(c.app.out, "Deleted client %s\n", id)
	return nil
}
