package config

const (
	// Configuration file paths
	ConfigPathItems        = "configs/items.json"
	ConfigPathEnchantments = "configs/enchantments.json"
	ConfigPathAliases      = "configs/aliases.json"
)

const (
	// DefaultSaveIntervalSec is how often the world save tick flushes
	// character state to the database
	DefaultSaveIntervalSec = 60

	// DefaultBuffTickSec is how often buff timers advance
	DefaultBuffTickSec = 1
)
