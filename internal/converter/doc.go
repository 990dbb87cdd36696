// Package converter runs the conversion pipeline over script files on disk.
//
// It expands inputs (files, directories, glob patterns),
// converts each script on a bounded worker pool and writes one header stub
// per input. When a manifest store is attached, inputs whose content hash
// and output file are unchanged since the last run are skipped.
//
// # Basic Usage
//
//	conv := converter.New(store, logger)
//
//	stats, err := conv.ConvertAll(ctx, []string{"cmake/", "Find*.cmake"}, &converter.Config{
//	    OutputDir: "build/doxygen",
//	    Workers:   4,
//	})
//
//	fmt.Printf("Converted %d files in %v\n", stats.FilesConverted, stats.Duration)
//
// # Output Naming
//
// The output of 'cmake/Helpers.cmake' is 'Helpers.cmake.h', placed in
// Config.OutputDir or next to the input when no directory is set. Inputs
// that already end with the output suffix are never converted again.
//
// # Concurrency
//
// ConvertAll fans out with errgroup and a semaphore channel sized by
// Config.Workers. The first I/O error cancels the batch. Manifest updates
// are written in one transaction after every output is on disk.
package converter
