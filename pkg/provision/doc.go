// Package provision brings GitHub repositories to their declared desired
// state: it creates pending repositories, grants collaborator access,
// installs a CI workflow file, and populates encrypted Actions secrets,
// then records which entries were provisioned.
//
// The desired state lives in a YAML file of repository specs with a status
// flag. Entries marked "need-to-create" are processed sequentially; a
// failure in one repository is recorded and the batch moves on. Statuses
// only ever move forward, and only after every call for that repository
// succeeded.
package provision
