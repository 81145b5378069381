package userapi

import (
	"context"
	"fmt"

	"github.com/noah-isme/userdir/internal/users"
)

// SampleUsers returns the fixture records published by the public users API.
func SampleUsers() []users.Draft {
	return []users.Draft{
		{Name: "Leanne Graham", Username: "Bret", Email: "Sincere@april.biz"},
		{Name: "Ervin Howell", Username: "Antonette", Email: "Shanna@melissa.tv"},
		{Name: "Clementine Bauch", Username: "Samantha", Email: "Nathan@yesenia.net"},
		{Name: "Patricia Lebsack", Username: "Karianne", Email: "Julianne.OConner@kory.org"},
		{Name: "Chelsey Dietrich", Username: "Kamren", Email: "Lucio_Hettinger@annie.ca"},
		{Name: "Mrs. Dennis Schulist", Username: "Leopoldo_Corkery", Email: "Karley_Dach@jasper.info"},
		{Name: "Kurtis Weissnat", Username: "Elwyn.Skiles", Email: "Telly.Hoeger@billy.biz"},
		{Name: "Nicholas Runolfsdottir V", Username: "Maxime_Nienow", Email: "Sherwood@rosamond.me"},
		{Name: "Glenna Reichert", Username: "Delphine", Email: "Chaim_McDermott@dana.io"},
		{Name: "Clementina DuBuque", Username: "Moriah.Stanton", Email: "Rey.Padberg@karina.biz"},
	}
}

// Seed creates drafts in store when it holds no records. It reports how many
// records were created.
func Seed(ctx context.Context, store Store, drafts []users.Draft) (int, error) {
	existing, err := store.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("userapi: seed: %w", err)
	}
	if len(existing) > 0 {
		return 0, nil
	}
	for i, d := range drafts {
		if _, err := store.Create(ctx, d); err != nil {
			return i, fmt.Errorf("userapi: seed %q: %w", d.Username, err)
		}
	}
	return len(drafts), nil
}
