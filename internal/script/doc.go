// Package script replays recorded user events against a fresh store.
//
// A script is a JSON or YAML document:
//
//	version: 1
//	examples: true          # start with the two example tasks
//	seed:                   # more starting tasks
//	  - title: Water plants
//	    status: completed
//	actions:
//	  - type: add
//	    title: Write tests
//	  - type: toggle
//	    ref: 1              # 1-based position, id or exact title
//
// Scripts are validated against an embedded JSON Schema before anything
// runs. They are inputs only; nothing is written back.
package script
