package config

// SampleConfig returns a fully commented configuration file
func SampleConfig() string {
	return `# irsum configuration
version: "1.0"

output:
  # Report format: text, json, markdown or csv
  default_format: text
  # Colour: auto, always or never
  color_mode: auto
  verbose: false
  # Emoji symbols in terminal reports
  emoji: true
  # Interactive viewer theme: default, high-contrast or minimal
  theme: default

analysis:
  # A space longer than repeat_factor times the average of the spaces
  # before it ends the bit data of every button
  repeat_factor: 10
  # Empty bit0/bit1 bucket handling: zero (average as 0, warn) or strict (fail)
  bucket_policy: zero
  # Bits per reported group
  group_size: 8
  # Largest capture file read, in bytes
  max_file_size: 10485760
  timeout: 30s

logging:
  # Diagnostic log format on stderr: text or json
  format: text

watch:
  # Quiet period after a write before re-analyzing
  debounce: 200ms
`
}

// MinimalSampleConfig returns a configuration with only the common settings
func MinimalSampleConfig() string {
	return `version: "1.0"
output:
  default_format: text
analysis:
  repeat_factor: 10
  bucket_policy: zero
`
}
