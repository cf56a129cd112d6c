package main

import (
	"fmt"
	"strings"

	"github.com/playbookos/ingest"
)

// Run executes the playbook create command.
func (c *PlaybookCreateCmd) Run(deps *Dependencies) error {
	playbook := &ingest.Playbook{
		Name: c.Name,
		Tags: c.Tag,
	}

	if err := deps.Playbooks.CreatePlaybook(deps.Ctx, playbook); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", ingest.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Created playbook %q (%s)\n", c.Name, playbook.ID)
	return nil
}

// Run executes the playbook show command.
func (c *PlaybookShowCmd) Run(deps *Dependencies) error {
	playbook, err := deps.Playbooks.FindPlaybookByID(deps.Ctx, c.ID)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", ingest.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "%s  %s\n", playbook.ID, playbook.Name)
	if len(playbook.Tags) > 0 {
		fmt.Fprintf(deps.Stdout, "  tags: %s\n", strings.Join(playbook.Tags, ", "))
	}
	fmt.Fprintf(deps.Stdout, "  created: %s\n", playbook.CreatedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(deps.Stdout, "  updated: %s\n", playbook.UpdatedAt.Format("2006-01-02 15:04:05"))
	return nil
}

// Run executes the playbook delete command.
func (c *PlaybookDeleteCmd) Run(deps *Dependencies) error {
	if !c.Force {
		fmt.Fprintf(deps.Stderr, "error: use --force to confirm deletion\n")
		return ingest.Errorf(ingest.EINVALID, "use --force to confirm deletion")
	}

	playbook, err := deps.Playbooks.FindPlaybookByID(deps.Ctx, c.ID)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", ingest.ErrorMessage(err))
		return err
	}

	if err := deps.Playbooks.DeletePlaybook(deps.Ctx, playbook.ID); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", ingest.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Deleted playbook %q\n", playbook.Name)
	return nil
}
