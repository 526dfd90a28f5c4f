// Package config loads makeover's settings.
//
// Values are layered, later sources winning: the embedded defaults.toml, the
// user file under the XDG config home, a .makeover.toml in the working
// directory, MAKEOVER_* environment variables, and finally the flags the
// user set explicitly. The result is validated before use.
package config
