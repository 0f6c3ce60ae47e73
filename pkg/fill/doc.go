// Package fill collects form answers interactively through a pluggable
// prompt driver. The default driver renders survey prompts on the
// terminal; tests substitute a scripted driver.
package fill
