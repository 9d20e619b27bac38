package main

import (
	"context"
	"fmt"

	"github.com/maestro-studio/maestro-cli/internal/repositories"
	"github.com/maestro-studio/maestro-cli/internal/shared"
	"github.com/urfave/cli/v3"
)

// PrefsSet writes a preference value, creating or updating as needed.
func (r *Runner) PrefsSet(ctx context.Context, cmd *cli.Command) error {
	key := cmd.StringArg("key")
	value := cmd.StringArg("value")
	if key == "" || value == "" {
		return fmt.Errorf("%w: key and value are required", shared.ErrMissingArgument)
	}

	db, err := r.openDatabase()
	if err != nil {
		return err
	}
	defer db.Close()

	repo := repositories.NewPreferenceRepository(db)
	pref, err := repo.Set(cmd.String("scope"), key, value)
	if err != nil {
		return fmt.Errorf("failed to set preference: %w", err)
	}

	r.logger.Info("preference saved", "scope", pref.Scope(), "key", pref.Key())
	return r.writePlain("✓ %s.%s = %s\n", pref.Scope(), pref.Key(), pref.Value())
}

// PrefsGet reads a single preference value.
func (r *Runner) PrefsGet(ctx context.Context, cmd *cli.Command) error {
	key := cmd.StringArg("key")
	if key == "" {
		return fmt.Errorf("%w: key is required", shared.ErrMissingArgument)
	}

	db, err := r.openDatabase()
	if err != nil {
		return err
	}
	defer db.Close()

	repo := repositories.NewPreferenceRepository(db)
	pref, err := repo.GetByKey(cmd.String("scope"), key)
	if err != nil {
		return fmt.Errorf("%w: no preference %s.%s", shared.ErrNotFound, cmd.String("scope"), key)
	}

	return r.writePlain("%s\n", pref.Value())
}

// PrefsList shows stored preferences, optionally filtered by scope.
func (r *Runner) PrefsList(ctx context.Context, cmd *cli.Command) error {
	db, err := r.openDatabase()
	if err != nil {
		return err
	}
	defer db.Close()

	criteria := map[string]any{}
	if scope := cmd.String("scope"); scope != "" {
		criteria["scope"] = scope
	}

	repo := repositories.NewPreferenceRepository(db)
	prefs, err := repo.List(criteria)
	if err != nil {
		return fmt.Errorf("failed to list preferences: %w", err)
	}

	if len(prefs) == 0 {
		return r.writePlain("No preferences set.\n")
	}

	r.writePlainHeader("Preferences")
	for _, pref := range prefs {
		r.writePlain("%s.%s = %s\n", pref.Scope(), pref.Key(), pref.Value())
	}
	return nil
}

// PrefsUnset deletes a preference.
func (r *Runner) PrefsUnset(ctx context.Context, cmd *cli.Command) error {
	key := cmd.StringArg("key")
	if key == "" {
		return fmt.Errorf("%w: key is required", shared.ErrMissingArgument)
	}

	db, err := r.openDatabase()
	if err != nil {
		return err
	}
	defer db.Close()

	scope := cmd.String("scope")
	repo := repositories.NewPreferenceRepository(db)
	pref, err := repo.GetByKey(scope, key)
	if err != nil {
		return fmt.Errorf("%w: no preference %s.%s", shared.ErrNotFound, scope, key)
	}

	if err := repo.Delete(pref.ID()); err != nil {
		return fmt.Errorf("failed to delete preference: %w", err)
	}

	return r.writePlain("✓ Removed %s.%s\n", scope, key)
}
