// Package assembler turns a parsed CMake script into a C header that
// Doxygen can read.
//
// Each script becomes one Doxygen group named after the file without its
// extension. The leading comment block of the script is the group
// description, followed by documented variables and then every function and
// macro:
//
//	/*!
//	  @defgroup Helpers Helpers
//	Build helpers.
//
//	  Generated from Helpers.cmake
//	 */
//	/*! @addtogroup Helpers
//	  @{
//	*/
//	/// @def ENABLE_X
//	/// Enable X
//	#define ENABLE_X
//
//	/*! @} */
//
// Scripts whose name starts with "Find" are find-package modules; their group
// is nested in the "Packages" group.
package assembler
