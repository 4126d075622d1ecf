// Package sysinfo reads process and host information for the API: memory
// figures, uptimes, load average, CPU details and the identity of the
// running instance. Linux figures come from procfs; anything that cannot be
// read is reported as zero rather than as an error.
package sysinfo
