/*
Package backup implements the incremental copy of a user's profile folders to
a network destination.

A run has three phases:

1) Resolution -- The candidate destination roots are probed in priority order
   (network share, mapped drive with a per-user directory, bare mapped drive)
   until one is reachable. Because the share may still be coming up when the
   user logs in, resolution is wrapped in a polling Waiter with a hard
   deadline.

2) Selection -- Each file under a source folder is judged by the Policy,
   which excludes system and application noise, desktop shortcuts, and
   oversized files. Outlook archives are exempt from the size cutoff since
   they are the single most valuable file on a typical machine.

3) Copy -- The Engine mirrors each source folder under the destination root.
   When an external bulk copy tool is available the whole folder is delegated
   to it; otherwise the engine walks the tree itself and copies files that
   are absent from the destination or newer at the source.

The engine never deletes anything on either side, and a failure on one file
never aborts the walk. Outcomes are aggregated into a Summary per folder.
*/
package backup
