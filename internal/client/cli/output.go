package cli

import (
	"fmt"
	"io"

	"github.com/dmitrijs2005/gsapi/internal/client/client"
	"github.com/dmitrijs2005/gsapi/internal/client/models"
)

func printProfile(w io.Writer, p *client.Profile) {
	u := p.User
	fmt.Fprintf(w, "%s", u.Username.OrElse("(anonymous)"))
	if email, ok := u.Email.Get(); ok {
		fmt.Fprintf(w, " <%s>", email)
		if !u.EmailChecked.OrElse(false) {
			fmt.Fprint(w, " (not verified)")
		}
	}
	fmt.Fprintln(w)

	first, last := u.Firstname.OrElse(""), u.Lastname.OrElse("")
	if first != "" || last != "" {
		fmt.Fprintf(w, "  name: %s %s\n", first, last)
	}

	fmt.Fprintf(w, "  compositions: %d\n", len(p.Compositions))
	for _, c := range p.Compositions {
		fmt.Fprintf(w, "  - %s\n", compositionTitle(c))
	}
}

// compositionTitle is the payload's name when it has one, else the id.
func compositionTitle(c models.Composition) string {
	if name, ok := c.Data["name"].(string); ok && name != "" {
		return fmt.Sprintf("%s (%s)", name, c.ID)
	}
	return c.ID
}
