package version

// AppVersion is the marquee release version. Overridden at build time with
// -ldflags "-X marquee/internal/version.AppVersion=...".
var AppVersion = "0.3.0"
