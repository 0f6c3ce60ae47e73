// Package flatten turns a parsed form template into the canonical ordered
// field sequence consumed by answer initialization and validation, including
// the fields synthesized from free-form section content.
package flatten
