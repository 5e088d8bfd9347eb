package esologs

// GraphQL documents sent to the v2 client API. Table payloads come
// back as untyped JSON blobs; decoding happens in the client against
// the wire types.

const reportQuery = `
query GetReport($code: String!) {
  reportData {
    report(code: $code) {
      code
      title
      startTime
      endTime
      zone {
        id
        name
      }
      guild {
        name
      }
      fights {
        id
        name
        startTime
        endTime
        difficulty
        kill
        bossPercentage
        encounterID
      }
    }
  }
}
`

const summaryTableQuery = `
query GetSummaryTable($code: String!, $startTime: Float!, $endTime: Float!) {
  reportData {
    report(code: $code) {
      table(
        dataType: Summary
        hostilityType: Friendlies
        startTime: $startTime
        endTime: $endTime
      )
    }
  }
}
`

const abilityTableQuery = `
query GetAbilityTable($code: String!, $startTime: Float!, $endTime: Float!, $dataType: TableDataType!, $sourceID: Int!) {
  reportData {
    report(code: $code) {
      table(
        dataType: $dataType
        hostilityType: Friendlies
        startTime: $startTime
        endTime: $endTime
        sourceID: $sourceID
      )
    }
  }
}
`

const auraTableQuery = `
query GetAuraTable($code: String!, $startTime: Float!, $endTime: Float!, $dataType: TableDataType!, $hostility: HostilityType!) {
  reportData {
    report(code: $code) {
      table(
        dataType: $dataType
        hostilityType: $hostility
        startTime: $startTime
        endTime: $endTime
      )
    }
  }
}
`
