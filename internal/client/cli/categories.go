package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/chrisdutt24/lifeadmin/internal/client/models"
	"github.com/chrisdutt24/lifeadmin/internal/common"
)

func (a *App) Categories(ctx context.Context, _ []string) error {
	cats, err := a.ws.Categories.List(ctx)
	if err != nil {
		return err
	}
	for _, c := range cats {
		a.println(categoryLine(c))
	}
	return nil
}

// findCategory matches ref against ids first, then names case-insensitively.
func (a *App) findCategory(ctx context.Context, ref string) (models.Category, error) {
	cats, err := a.ws.Categories.List(ctx)
	if err != nil {
		return models.Category{}, err
	}
	for _, c := range cats {
		if c.ID == ref {
			return c, nil
		}
	}
	for _, c := range cats {
		if strings.EqualFold(c.Name, ref) {
			return c, nil
		}
	}
	return models.Category{}, fmt.Errorf("category %q: %w", ref, common.ErrNotFound)
}

func readGroup(s string) (models.Group, error) {
	g, ok := models.ParseGroup(s)
	if !ok {
		return "", fmt.Errorf("unknown group %q, expected contracts or appointments: %w", s, common.ErrValidation)
	}
	return g, nil
}

func (a *App) AddCategory(ctx context.Context, args []string) error {
	name := strings.Join(args, " ")
	if name == "" {
		var err error
		if name, err = getSimpleText(a.reader, "Category name", a.out); err != nil {
			return err
		}
	}

	rawGroup, err := getSimpleText(a.reader, "Group (contracts/appointments) [appointments]", a.out)
	if err != nil {
		return err
	}
	group := models.GroupAppointments
	if rawGroup != "" {
		if group, err = readGroup(rawGroup); err != nil {
			return err
		}
	}

	icon, err := getSimpleText(a.reader, fmt.Sprintf("Icon [%s]", models.DefaultIcon), a.out)
	if err != nil {
		return err
	}

	c, err := a.ws.Categories.Create(ctx, models.CategoryInput{Name: name, Group: group, Icon: icon})
	if err != nil {
		return err
	}
	a.printf("Created category %s (%s)\n", c.Name, c.Group)
	return nil
}

func (a *App) EditCategory(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: editcategory <id|name>")
	}
	c, err := a.findCategory(ctx, strings.Join(args, " "))
	if err != nil {
		return err
	}

	var patch models.CategoryPatch

	name, err := getSimpleText(a.reader, fmt.Sprintf("Name [%s]", c.Name), a.out)
	if err != nil {
		return err
	}
	if name != "" {
		patch.Name = &name
	}

	rawGroup, err := getSimpleText(a.reader, fmt.Sprintf("Group [%s]", c.Group), a.out)
	if err != nil {
		return err
	}
	if rawGroup != "" {
		g, err := readGroup(rawGroup)
		if err != nil {
			return err
		}
		patch.Group = &g
	}

	icon, err := getSimpleText(a.reader, fmt.Sprintf("Icon [%s]", c.Icon), a.out)
	if err != nil {
		return err
	}
	if icon != "" {
		patch.Icon = &icon
	}

	updated, err := a.ws.Categories.Update(ctx, c.ID, patch)
	if err != nil {
		return err
	}
	a.printf("Updated category %s (%s)\n", updated.Name, updated.Group)
	return nil
}

func (a *App) RemoveCategory(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: rmcategory <id|name>")
	}
	c, err := a.findCategory(ctx, strings.Join(args, " "))
	if err != nil {
		return err
	}
	if err := a.ws.Categories.Delete(ctx, c.ID); err != nil {
		return err
	}
	a.printf("Deleted category %s\n", c.Name)
	return nil
}
