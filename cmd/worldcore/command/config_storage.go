package command

import (
	"fmt"
	"os"

	"github.com/pixil98/go-errors"
	"github.com/pixil98/go-worldcore/internal/storage"
	"github.com/pixil98/go-worldcore/internal/world"
)

type StorageConfig struct {
	Zones   AssetConfig[*world.ZoneRecord]  `json:"zones"`
	Rooms   AssetConfig[*world.RoomRecord]  `json:"rooms"`
	Mobiles AssetConfig[*world.MobTemplate] `json:"mobiles"`
	Objects AssetConfig[*world.ObjTemplate] `json:"objects"`
	Shops   AssetConfig[*world.ShopRecord]  `json:"shops"`
}

func (c *StorageConfig) validate() error {
	el := errors.NewErrorList()
	el.Add(c.Zones.validate("zones"))
	el.Add(c.Rooms.validate("rooms"))
	el.Add(c.Mobiles.validate("mobiles"))
	el.Add(c.Objects.validate("objects"))
	// Shops are optional.
	if c.Shops.Path != "" {
		el.Add(c.Shops.validate("shops"))
	}
	return el.Err()
}

// BuildRecords reads every record store into the form world.Boot takes.
// Start rooms and the void room come from the rest of the config.
func (c *StorageConfig) BuildRecords() (world.Records, error) {
	var recs world.Records
	var err error

	recs.Zones, err = c.Zones.load(func(z *world.ZoneRecord, v world.Vnum) { z.Number = v })
	if err != nil {
		return recs, fmt.Errorf("loading zones: %w", err)
	}
	recs.Rooms, err = c.Rooms.load(func(r *world.RoomRecord, v world.Vnum) { r.Number = v })
	if err != nil {
		return recs, fmt.Errorf("loading rooms: %w", err)
	}
	recs.Mobiles, err = c.Mobiles.load(func(m *world.MobTemplate, v world.Vnum) { m.Number = v })
	if err != nil {
		return recs, fmt.Errorf("loading mobiles: %w", err)
	}
	recs.Objects, err = c.Objects.load(func(o *world.ObjTemplate, v world.Vnum) { o.Number = v })
	if err != nil {
		return recs, fmt.Errorf("loading objects: %w", err)
	}
	if c.Shops.Path != "" {
		recs.Shops, err = c.Shops.load(func(s *world.ShopRecord, v world.Vnum) { s.Number = v })
		if err != nil {
			return recs, fmt.Errorf("loading shops: %w", err)
		}
	}

	return recs, nil
}

type AssetConfig[T storage.ValidatingSpec] struct {
	Path string `json:"path"`
}

func (c *AssetConfig[T]) validate(name string) error {
	if c.Path == "" {
		return fmt.Errorf("%s: path is required", name)
	}
	_, err := os.Stat(c.Path)
	if err != nil {
		return fmt.Errorf("%s: invalid path %q: %w", name, c.Path, err)
	}

	return nil
}

func (c *AssetConfig[T]) BuildFileStore() (*storage.FileStore[T], error) {
	return storage.NewFileStore[T](c.Path)
}

// load returns the store's records in vnum order, each stamped with the
// vnum it was filed under.
func (c *AssetConfig[T]) load(setVnum func(T, world.Vnum)) ([]T, error) {
	st, err := c.BuildFileStore()
	if err != nil {
		return nil, err
	}

	entries := st.Entries()
	recs := make([]T, 0, len(entries))
	for _, e := range entries {
		setVnum(e.Spec, world.Vnum(e.Vnum))
		recs = append(recs, e.Spec)
	}
	return recs, nil
}
