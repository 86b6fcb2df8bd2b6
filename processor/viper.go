package processor

import (
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

const (
	// BatchKey is the Viper subkey under which batch processor configuration
	// should be stored.  FromViper *does not* assume this key.
	BatchKey = "batch"
)

// Sub returns the standard child Viper, using BatchKey, for this package.
// If passed nil, this function returns nil.
func Sub(v *viper.Viper) *viper.Viper {
	if v != nil {
		return v.Sub(BatchKey)
	}

	return nil
}

// FromViper produces a BatchOptions from a (possibly nil) Viper instance.
// Callers should use FromViper(Sub(v)) if the standard subkey is desired.
func FromViper(v *viper.Viper) (*BatchOptions, error) {
	o := new(BatchOptions)
	if v != nil {
		err := v.Unmarshal(o, viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
			mapstructure.TextUnmarshallerHookFunc(),
			mapstructure.StringToTimeDurationHookFunc(),
		)))

		if err != nil {
			return nil, err
		}
	}

	return o, nil
}
