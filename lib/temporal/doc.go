/*Package temporal defines calendar and clock values for starlark, backed by
the calclock temporal package.

  outline: temporal
    temporal defines calendar and clock values for starlark
    path: temporal
    functions:
      instant(epoch_ms) instant
        the instant epoch_ms milliseconds after 1970-01-01T00:00:00Z
      duration(years=0, months=0, weeks=0, days=0, hours=0, minutes=0, seconds=0, milliseconds=0) duration
        a duration of independent components
      plain_time(hour=0, minute=0, second=0, millisecond=0) plain_time
      plain_date(year, month, day) plain_date
      plain_date_time(year, month, day, hour=0, minute=0, second=0, millisecond=0) plain_date_time
      zoned_date_time(instant, zone) zoned_date_time
      parse_instant(string) instant
      parse_duration(string) duration
        parse an ISO 8601 duration such as "P1DT12H"
      parse_plain_time(string) plain_time
      parse_plain_date(string) plain_date
      parse_plain_date_time(string) plain_date_time
      parse_zoned_date_time(string) zoned_date_time
        parse "2024-03-25T11:00:00-07:00[America/Los_Angeles]"; the offset is optional
      now() instant
        the current instant, from NowFunc or the clock set with SetNow

    types:
      duration
        fields:
          years months weeks days hours minutes seconds milliseconds int
          sign int
          blank bool
        functions:
          total(unit) float
            length in unit, with months of 30 days and years of 365
          negated() duration
          abs() duration
          add(duration) duration
          subtract(duration) duration
        operators:
          duration + duration = duration
          duration - duration = duration
          duration * int = duration
          -duration = duration
          duration == duration = boolean
      instant, plain_time, plain_date, plain_date_time, zoned_date_time
        functions:
          add(duration) same type
          subtract(duration) same type
          until(same type) duration
          since(same type) duration
        operators:
          x + duration = x
          x - duration = x
          x - x = duration
          x == x = boolean
          x < x = boolean
      instant
        fields:
          epoch_milliseconds int
        functions:
          to_zoned_date_time(zone) zoned_date_time
      plain_time
        fields:
          hour minute second millisecond int
        functions:
          replace(**fields) plain_time
      plain_date
        fields:
          year month day int
          day_of_week day_of_year week_of_year days_in_month days_in_year int
          in_leap_year bool
        functions:
          add_constrained(duration) plain_date
            add, clamping the day to the end of a shorter month
          replace(**fields) plain_date
          to_plain_date_time(time=midnight) plain_date_time
          to_zoned_date_time(zone, time=midnight, disambiguation="compatible") zoned_date_time
      plain_date_time
        fields:
          year month day hour minute second millisecond int
        functions:
          replace(**fields) plain_date_time
          to_plain_date() plain_date
          to_plain_time() plain_time
          to_zoned_date_time(zone, disambiguation="compatible") zoned_date_time
      zoned_date_time
        fields:
          year month day hour minute second millisecond int
          offset string
          offset_minutes int
          zone string
          epoch_milliseconds int
        functions:
          add(duration, disambiguation="compatible") zoned_date_time
          subtract(duration, disambiguation="compatible") zoned_date_time
          to_instant() instant
          to_plain_date_time() plain_date_time
          to_plain_date() plain_date
          to_plain_time() plain_time
          with_zone(zone) zoned_date_time
*/
package temporal
